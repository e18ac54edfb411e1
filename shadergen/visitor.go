// Package shadergen replaces the fixed-function shading state of a scene
// graph with generated programs. A [Visitor] walks the graph accumulating
// effective state, derives a [glbuild.FeatureMask] per drawable and attaches
// the matching program from a shared [Cache].
package shadergen

import (
	"github.com/chewxy/math32"
	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/glbuild"
	"github.com/soypat/scenegl/glstate"
)

// Uniform names written by the visitor.
const (
	LightPositionUniform    = "osg_LightSource.position"
	MaterialAmbientUniform  = "osg_Material.ambient"
	MaterialDiffuseUniform  = "osg_Material.diffuse"
	MaterialSpecularUniform = "osg_Material.specular"
	MaterialShineUniform    = "osg_Material.shine"
)

// Material values used when no material is in effect.
var (
	DefaultAmbient   = scenegl.Vec4{X: 0.2, Y: 0.2, Z: 0.2, W: 1}
	DefaultDiffuse   = scenegl.Vec4{X: 0.8, Y: 0.8, Z: 0.8, W: 1}
	DefaultSpecular  = scenegl.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	DefaultShininess = float32(16)
)

// Visitor attaches generated programs to the drawables of a scene graph.
// A Visitor is not safe for concurrent use; the [Cache] it uses may be
// shared between visitors.
type Visitor struct {
	cache *Cache
	state glstate.State
	root  *scenegl.StateSet
	light *scenegl.Node
}

// NewVisitor returns a visitor drawing programs from cache. A nil cache is
// replaced by a new cache with no flags.
func NewVisitor(cache *Cache) *Visitor {
	if cache == nil {
		cache = NewCache(0)
	}
	return &Visitor{cache: cache}
}

func (v *Visitor) Cache() *Cache { return v.cache }

// SetRootStateSet sets the state set that sits at the bottom of the stack
// for the whole traversal, replacing the previous root. A nil ss clears it.
func (v *Visitor) SetRootStateSet(ss *scenegl.StateSet) {
	if v.root != nil {
		v.state.Remove(0)
	}
	v.root = ss
	if ss != nil {
		v.state.Push(ss)
	}
}

func (v *Visitor) RootStateSet() *scenegl.StateSet { return v.root }

// Light returns the light source node captured during traversal, or nil.
func (v *Visitor) Light() *scenegl.Node { return v.light }

// Depth returns the current state stack depth.
func (v *Visitor) Depth() int { return v.state.Depth() }

// Reset prepares the visitor for a new traversal. The stack is emptied
// except for the root state set and the captured light is forgotten.
func (v *Visitor) Reset() {
	v.state.PopAll()
	v.light = nil
	if v.root != nil {
		v.state.Push(v.root)
	}
}

// Apply traverses node and its descendants.
func (v *Visitor) Apply(node *scenegl.Node) {
	if node == nil {
		return
	}
	ss := node.StateSet()
	if ss != nil {
		v.state.Push(ss)
		defer v.state.Pop()
	}
	switch node.Kind() {
	case scenegl.KindGroup, scenegl.KindTransform:
	case scenegl.KindLightSource:
		if v.light == nil {
			v.light = node
			UpdateLightUniforms(node.GetOrCreateStateSet(), node.Light())
		}
	case scenegl.KindGeode:
		for _, g := range node.Drawables() {
			v.applyGeometry(g)
		}
	default:
		panic("unknown node kind " + node.Kind().String())
	}
	for _, child := range node.Children() {
		v.Apply(child)
	}
}

func (v *Visitor) applyGeometry(g *scenegl.Geometry) {
	if g == nil {
		return
	}
	if ss := g.StateSet(); ss != nil {
		v.state.Push(ss)
		defer v.state.Pop()
	}
	v.update(g)
}

func (v *Visitor) update(g *scenegl.Geometry) {
	baseline := 0
	if v.root != nil {
		baseline = 1
	}
	if v.state.Depth() == baseline {
		return // No state accumulated.
	}
	if v.state.Attribute(scenegl.AttrProgram) != nil {
		return // Keep externally supplied programs.
	}
	mask := MaskFor(&v.state, g)
	entry := v.cache.GetOrCreate(mask)
	if entry == nil {
		return
	}

	// Program and uniforms go on the drawable's own state set, never an ancestor's.
	ss := g.GetOrCreateStateSet()
	prog, _ := entry.Attribute(scenegl.AttrProgram)
	if prog != nil {
		ss.SetAttribute(prog)
	}
	ss.SetUniformList(entry.Uniforms())

	if mat, ok := v.state.Attribute(scenegl.AttrMaterial).(*scenegl.Material); ok && mat != nil {
		addMaterialUniforms(ss, mat.Ambient, mat.Diffuse, mat.Specular, mat.Shininess)
		ss.RemoveAttribute(scenegl.AttrMaterial)
	} else {
		addMaterialUniforms(ss, DefaultAmbient, DefaultDiffuse, DefaultSpecular, DefaultShininess)
	}

	if mask.Has(glbuild.Lighting) {
		ss.RemoveMode(scenegl.ModeLighting)
		ss.RemoveMode(scenegl.ModeLight0)
	}
	if mask.Has(glbuild.DiffuseMap) {
		ss.RemoveTextureMode(glbuild.DiffuseMapUnit, scenegl.ModeTexture2D)
	}
	if mask.Has(glbuild.NormalMap) {
		ss.RemoveTextureMode(glbuild.NormalMapUnit, scenegl.ModeTexture2D)
	}
	scenegl.Logger().Debug("shadergen: shaded drawable", "geometry", g.Name, "mask", mask)
}

func addMaterialUniforms(ss *scenegl.StateSet, ambient, diffuse, specular scenegl.Vec4, shine float32) {
	ss.AddUniform(scenegl.NewVec4Uniform(MaterialAmbientUniform, ambient))
	ss.AddUniform(scenegl.NewVec4Uniform(MaterialDiffuseUniform, diffuse))
	ss.AddUniform(scenegl.NewVec4Uniform(MaterialSpecularUniform, specular))
	ss.AddUniform(scenegl.NewFloatUniform(MaterialShineUniform, shine))
}

// MaskFor derives the feature mask of geometry g drawn with the effective state of s.
// The normal map bit requires both a texture on unit 1 and a tangent array
// at [glbuild.TangentLocation].
func MaskFor(s *glstate.State, g *scenegl.Geometry) glbuild.FeatureMask {
	var mask glbuild.FeatureMask
	if s.Mode(scenegl.ModeLighting, scenegl.Inherit).IsOn() {
		mask |= glbuild.Lighting
	}
	if s.TextureAttribute(glbuild.DiffuseMapUnit, scenegl.AttrTexture) != nil {
		mask |= glbuild.DiffuseMap
	}
	if s.TextureAttribute(glbuild.NormalMapUnit, scenegl.AttrTexture) != nil &&
		g != nil && g.VertexAttribArray(glbuild.TangentLocation) != nil {
		mask |= glbuild.NormalMap
	}
	return mask
}

// UpdateLightUniforms writes the light position uniform onto ss. The xyz
// of a directional light (W=0) is normalized; a zero direction is left as is.
func UpdateLightUniforms(ss *scenegl.StateSet, light *scenegl.Light) {
	if ss == nil || light == nil {
		return
	}
	pos := light.Position
	if pos.W == 0 {
		norm := math32.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
		if norm > 0 {
			pos.X /= norm
			pos.Y /= norm
			pos.Z /= norm
		}
	}
	ss.AddUniform(scenegl.NewVec4Uniform(LightPositionUniform, pos))
}
