package scenegl

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Array is a typed per-vertex data array.
type Array interface {
	Len() int
}

type (
	Vec2Array  []ms2.Vec
	Vec3Array  []ms3.Vec
	Vec4Array  []Vec4
	FloatArray []float32
)

func (a Vec2Array) Len() int  { return len(a) }
func (a Vec3Array) Len() int  { return len(a) }
func (a Vec4Array) Len() int  { return len(a) }
func (a FloatArray) Len() int { return len(a) }

// PrimitiveMode is the primitive topology of a [PrimitiveSet]. Values match the GL enumerants.
type PrimitiveMode uint32

const (
	Points        PrimitiveMode = 0x0000
	Lines         PrimitiveMode = 0x0001
	LineStrip     PrimitiveMode = 0x0003
	Triangles     PrimitiveMode = 0x0004
	TriangleStrip PrimitiveMode = 0x0005
	TriangleFan   PrimitiveMode = 0x0006
)

// PrimitiveSet describes how vertices of a [Geometry] assemble into primitives.
type PrimitiveSet interface {
	PrimitiveMode() PrimitiveMode
	NumIndices() int
}

// DrawElements draws vertices through an index list.
type DrawElements struct {
	Mode    PrimitiveMode
	Indices []uint32
}

func (d *DrawElements) PrimitiveMode() PrimitiveMode { return d.Mode }
func (d *DrawElements) NumIndices() int              { return len(d.Indices) }

// DrawArrays draws Count consecutive vertices starting at First.
type DrawArrays struct {
	Mode  PrimitiveMode
	First int
	Count int
}

func (d *DrawArrays) PrimitiveMode() PrimitiveMode { return d.Mode }
func (d *DrawArrays) NumIndices() int              { return d.Count }

// Geometry is a drawable mesh.
type Geometry struct {
	Name     string
	Vertices Array
	Normals  Array
	Colors   Array
	// PrimitiveSets are drawn in order.
	PrimitiveSets []PrimitiveSet

	stateSet  *StateSet
	texCoords []Array
	// vertexAttribs is indexed by attribute location.
	vertexAttribs []Array
}

// StateSet returns the geometry's own state set, or nil if it has none.
func (g *Geometry) StateSet() *StateSet { return g.stateSet }

func (g *Geometry) SetStateSet(ss *StateSet) { g.stateSet = ss }

// GetOrCreateStateSet returns the geometry's own state set, creating an empty one if absent.
func (g *Geometry) GetOrCreateStateSet() *StateSet {
	if g.stateSet == nil {
		g.stateSet = NewStateSet()
	}
	return g.stateSet
}

// TexCoordArray returns the texture coordinates for unit, or nil.
func (g *Geometry) TexCoordArray(unit int) Array {
	if unit < 0 || unit >= len(g.texCoords) {
		return nil
	}
	return g.texCoords[unit]
}

func (g *Geometry) SetTexCoordArray(unit int, a Array) {
	for len(g.texCoords) <= unit {
		g.texCoords = append(g.texCoords, nil)
	}
	g.texCoords[unit] = a
}

// VertexAttribArray returns the generic vertex attribute array bound at location, or nil.
func (g *Geometry) VertexAttribArray(location int) Array {
	if location < 0 || location >= len(g.vertexAttribs) {
		return nil
	}
	return g.vertexAttribs[location]
}

func (g *Geometry) SetVertexAttribArray(location int, a Array) {
	for len(g.vertexAttribs) <= location {
		g.vertexAttribs = append(g.vertexAttribs, nil)
	}
	g.vertexAttribs[location] = a
}

// AddPrimitiveSet appends p to the geometry's primitive sets.
func (g *Geometry) AddPrimitiveSet(p PrimitiveSet) {
	g.PrimitiveSets = append(g.PrimitiveSets, p)
}

// FirstDrawElements returns the first indexed primitive set and the number of primitive sets after it.
func (g *Geometry) FirstDrawElements() (de *DrawElements, remaining int) {
	for i, p := range g.PrimitiveSets {
		if de, ok := p.(*DrawElements); ok {
			return de, len(g.PrimitiveSets) - i - 1
		}
	}
	return nil, 0
}
