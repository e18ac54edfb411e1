// Package sgaux chains shader synthesis, shader export and render graph
// conversion into a single call for users getting started with scenegl.
// Applications with different needs should call the underlying packages directly.
package sgaux

import (
	"errors"
	"fmt"
	"time"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/glbuild"
	"github.com/soypat/scenegl/glcompile"
	"github.com/soypat/scenegl/shadergen"
	"github.com/soypat/scenegl/vkconv"
	"github.com/soypat/scenegl/vkgraph"
)

type Config struct {
	// Flags configure shader generation, i.e. normal map green channel flipping.
	Flags glbuild.Flags
	// RootStateSet is the state inherited by the whole scene. May be nil.
	RootStateSet *scenegl.StateSet
	// ImageDir, if set, rewrites every texture image file to ImageDir/<base name>.
	ImageDir string
	// ShaderDir, if set, receives the SPIR-V compatible source of every synthesized program.
	ShaderDir string
	// Convert enables render graph conversion. Shader modules and textures
	// are searched for in SearchPaths.
	Convert     bool
	SearchPaths []string
	Pipeline    vkconv.PipelineConfig
	// UseGPU compiles every synthesized program on a hidden GL context.
	// Requires cgo and must be called from the main OS thread.
	UseGPU bool
	Silent bool
}

// Result holds the products of [Process].
type Result struct {
	Cache *shadergen.Cache
	// Light is the light source node whose light the synthesized programs use, or nil.
	Light *scenegl.Node
	// Graph is the converted render graph root. Nil if conversion was not enabled.
	Graph *vkgraph.Group
}

// Process replaces fixed-function shading state in the scene rooted at root with
// synthesized programs and runs the export and conversion steps enabled in cfg.
// Geometry the render graph conversion could not handle is skipped and reported
// in the returned error alongside a valid Result.
func Process(root *scenegl.Node, cfg Config) (result Result, err error) {
	if root == nil {
		return result, errors.New("Process requires a non-nil root node")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	watch := stopwatch()
	cache := shadergen.NewCache(cfg.Flags)
	visitor := shadergen.NewVisitor(cache)
	if cfg.RootStateSet != nil {
		visitor.SetRootStateSet(cfg.RootStateSet)
	}
	visitor.Apply(root)
	result.Cache = cache
	result.Light = visitor.Light()
	log("synthesized", cache.Len(), "programs in", watch())
	if result.Light == nil {
		log("no light source found in scene")
	}

	if cfg.UseGPU {
		watch = stopwatch()
		terminate, err := glcompile.Init1x1GLFW()
		if err != nil {
			return result, err
		}
		err = validateAll(cache)
		terminate()
		if err != nil {
			return result, err
		}
		log("compiled", cache.Len(), "programs on GPU in", watch())
	}

	if cfg.ImageDir != "" {
		shadergen.SetImageDirectory(root, cfg.ImageDir)
	}

	if cfg.ShaderDir != "" {
		watch = stopwatch()
		err = shadergen.ExportShaders(root, cfg.ShaderDir)
		if err != nil {
			return result, fmt.Errorf("exporting shaders: %w", err)
		}
		log("exported shaders to", cfg.ShaderDir, "in", watch())
	}

	if cfg.Convert {
		watch = stopwatch()
		gb := vkconv.NewGraphBuilder(cfg.SearchPaths)
		gb.Pipeline = cfg.Pipeline
		gb.Apply(root)
		result.Graph = gb.Root()
		log("converted", len(result.Graph.Children()), "geometries in", watch())
		if err = gb.Err(); err != nil {
			return result, fmt.Errorf("converting render graph: %w", err)
		}
	}
	return result, nil
}

func validateAll(cache *shadergen.Cache) error {
	for mask := glbuild.FeatureMask(0); mask < glbuild.NumMasks; mask++ {
		ss := cache.StateSet(mask)
		if ss == nil {
			continue
		}
		attr, _ := ss.Attribute(scenegl.AttrProgram)
		prog, ok := attr.(*scenegl.Program)
		if !ok {
			continue
		}
		if err := glcompile.Validate(prog); err != nil {
			return err
		}
	}
	return nil
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
