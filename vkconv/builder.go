package vkconv

import (
	"errors"
	"fmt"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/vkgraph"
)

// DefaultTextureFile is the texture bound to every converted geometry.
const DefaultTextureFile = "textures/lz.png"

// GraphBuilder converts the geometries of a scene graph into pipeline
// subgraphs appended under a single render graph root. The source scene
// graph is never modified. A failure to convert one geometry skips that
// geometry only; failures are accumulated and returned by [GraphBuilder.Err].
type GraphBuilder struct {
	// SearchPaths are searched in order for shader modules and textures.
	SearchPaths []string
	// TextureFile is read once per converted geometry.
	TextureFile string
	Pipeline    PipelineConfig

	root      *vkgraph.Group
	accumErrs []error
}

// NewGraphBuilder returns a GraphBuilder with an empty root that binds [DefaultTextureFile].
func NewGraphBuilder(searchPaths []string) *GraphBuilder {
	return &GraphBuilder{
		SearchPaths: searchPaths,
		TextureFile: DefaultTextureFile,
		root:        &vkgraph.Group{},
	}
}

// Root returns the render graph root all converted geometry is appended to.
func (gb *GraphBuilder) Root() *vkgraph.Group {
	if gb.root == nil {
		gb.root = &vkgraph.Group{}
	}
	return gb.root
}

// Err returns the accumulated conversion errors or nil.
func (gb *GraphBuilder) Err() error {
	if len(gb.accumErrs) == 0 {
		return nil
	}
	return errors.Join(gb.accumErrs...)
}

// Apply converts every geometry in the scene graph rooted at node.
func (gb *GraphBuilder) Apply(node *scenegl.Node) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case scenegl.KindGroup, scenegl.KindTransform, scenegl.KindLightSource:
	case scenegl.KindGeode:
		for _, g := range node.Drawables() {
			if g == nil {
				continue
			}
			gp, err := gb.ConvertGeometry(g)
			if err != nil {
				scenegl.Logger().Warn("vkconv: skipping geometry", "geometry", g.Name, "err", err)
				gb.accumErrs = append(gb.accumErrs, err)
				continue
			}
			if gp != nil {
				gb.Root().AddChild(gp)
			}
		}
	default:
		panic("unknown node kind " + node.Kind().String())
	}
	for _, child := range node.Children() {
		gb.Apply(child)
	}
}

// ConvertGeometry builds the pipeline, transform, texture and geometry node
// chain for g. Only the first indexed primitive set is converted. A geometry
// with no indexed primitive set yields a nil group and nil error.
func (gb *GraphBuilder) ConvertGeometry(g *scenegl.Geometry) (*vkgraph.PipelineGroup, error) {
	log := scenegl.Logger()
	de, remaining := g.FirstDrawElements()
	if de == nil {
		log.Debug("vkconv: geometry has no indexed primitive set", "geometry", g.Name)
		return nil, nil
	}
	if remaining > 0 {
		log.Debug("vkconv: skipping extra primitive sets", "geometry", g.Name, "skipped", remaining)
	}
	vertices, err := Convert(g.Vertices)
	if err != nil {
		return nil, fmt.Errorf("geometry %q vertices: %w", g.Name, err)
	}
	texcoords, err := Convert(g.TexCoordArray(0))
	if err != nil {
		return nil, fmt.Errorf("geometry %q texture coordinates: %w", g.Name, err)
	}
	indices := ConvertIndices(de)

	gp, err := CreateGraphicsPipeline(gb.SearchPaths, gb.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("geometry %q pipeline: %w", g.Name, err)
	}
	transform := vkgraph.NewMatrixTransform()
	gp.AddChild(transform)

	img, err := gb.readTexture()
	if err != nil {
		return nil, fmt.Errorf("geometry %q texture: %w", g.Name, err)
	}
	texture := &vkgraph.Texture{Binding: 0, Image: img}
	transform.AddChild(texture)

	geom := &vkgraph.Geometry{
		Arrays:  []vkgraph.Data{vertices, Colors(g.Colors, vertices.ValueCount()), texcoords},
		Indices: indices,
		Commands: []vkgraph.Command{
			&vkgraph.DrawIndexed{IndexCount: uint32(indices.ValueCount()), InstanceCount: 1},
		},
	}
	texture.AddChild(geom)
	return gp, nil
}

func (gb *GraphBuilder) readTexture() (*vkgraph.Image, error) {
	name := gb.TextureFile
	if name == "" {
		name = DefaultTextureFile
	}
	path, err := vkgraph.FindFile(name, gb.SearchPaths)
	if err != nil {
		return nil, err
	}
	return vkgraph.ReadImage(path)
}
