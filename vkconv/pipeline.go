package vkconv

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/soypat/scenegl/vkgraph"
)

// Default shader module locations, relative to the search paths.
const (
	DefaultVertexShader   = "shaders/vert_PushConstants.spv"
	DefaultFragmentShader = "shaders/frag_PushConstants.spv"
)

// PushConstantsSize is the size in bytes of the push constant block holding
// the projection, view and model matrices and the normal matrix.
const PushConstantsSize = 196

// PipelineConfig configures [CreateGraphicsPipeline]. Zero fields take defaults.
type PipelineConfig struct {
	VertexShader   string
	FragmentShader string
	EntryPoint     string
	ColorFormat    gputypes.TextureFormat
	DepthFormat    gputypes.TextureFormat
}

func (cfg *PipelineConfig) setDefaults() {
	if cfg.VertexShader == "" {
		cfg.VertexShader = DefaultVertexShader
	}
	if cfg.FragmentShader == "" {
		cfg.FragmentShader = DefaultFragmentShader
	}
	if cfg.EntryPoint == "" {
		cfg.EntryPoint = "main"
	}
	if cfg.ColorFormat == gputypes.TextureFormatUndefined {
		cfg.ColorFormat = gputypes.TextureFormatRGBA8Unorm
	}
	if cfg.DepthFormat == gputypes.TextureFormatUndefined {
		cfg.DepthFormat = gputypes.TextureFormatDepth32Float
	}
}

// CreateGraphicsPipeline loads the vertex and fragment shader modules found
// through searchPaths and returns a pipeline group drawing textured geometry
// with vertex buffers {0: position vec3, 1: color vec3, 2: texcoord vec2},
// one combined image sampler at binding 0 and the transform push constants.
func CreateGraphicsPipeline(searchPaths []string, cfg PipelineConfig) (*vkgraph.PipelineGroup, error) {
	cfg.setDefaults()
	vert, err := readShader(gputypes.ShaderStageVertex, cfg.EntryPoint, cfg.VertexShader, searchPaths)
	if err != nil {
		return nil, err
	}
	frag, err := readShader(gputypes.ShaderStageFragment, cfg.EntryPoint, cfg.FragmentShader, searchPaths)
	if err != nil {
		return nil, err
	}
	depth := gputypes.DefaultDepthStencilState(cfg.DepthFormat)
	gp := &vkgraph.PipelineGroup{
		Shaders: []*vkgraph.ShaderModule{vert, frag},
		MaxSets: 1,
		DescriptorPoolSizes: []vkgraph.DescriptorPoolSize{
			{Type: vkgraph.DescriptorCombinedImageSampler, Count: 1},
		},
		DescriptorBindings: []vkgraph.DescriptorBinding{
			{Binding: 0, Type: vkgraph.DescriptorCombinedImageSampler, Count: 1, Stages: gputypes.ShaderStageFragment},
		},
		PushConstantRanges: []gputypes.PushConstantRange{
			{Stages: gputypes.ShaderStageVertex, Start: 0, End: PushConstantsSize},
		},
		VertexBuffers: []gputypes.VertexBufferLayout{
			vertexBuffer(0, gputypes.VertexFormatFloat32x3), // Position.
			vertexBuffer(1, gputypes.VertexFormatFloat32x3), // Color.
			vertexBuffer(2, gputypes.VertexFormatFloat32x2), // Texture coordinates.
		},
		Primitive:   gputypes.DefaultPrimitiveState(),
		Multisample: gputypes.DefaultMultisampleState(),
		ColorTargets: []gputypes.ColorTargetState{
			{Format: cfg.ColorFormat, WriteMask: gputypes.ColorWriteMaskAll},
		},
		DepthStencil: &depth,
	}
	return gp, nil
}

func vertexBuffer(location uint32, format gputypes.VertexFormat) gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: format.Size(),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: format, Offset: 0, ShaderLocation: location},
		},
	}
}

func readShader(stage gputypes.ShaderStage, entryPoint, name string, searchPaths []string) (*vkgraph.ShaderModule, error) {
	path, err := vkgraph.FindFile(name, searchPaths)
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", stage, err)
	}
	mod, err := vkgraph.ReadShader(stage, entryPoint, path)
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", stage, err)
	}
	return mod, nil
}
