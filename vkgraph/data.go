// Package vkgraph is the render graph consumed by an explicit-API renderer:
// pipeline groups holding fixed pipeline configuration, transform, texture
// and geometry nodes, and tightly packed typed data arrays ready for upload.
package vkgraph

import (
	"github.com/gogpu/gputypes"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Data is a typed array of values ready to be copied into a GPU buffer.
type Data interface {
	// ValueCount returns the number of elements in the array.
	ValueCount() int
	// ValueSize returns the size in bytes of a single element.
	ValueSize() int
}

// VertexData is Data usable as a vertex buffer.
type VertexData interface {
	Data
	VertexFormat() gputypes.VertexFormat
}

// IndexData is Data usable as an index buffer.
type IndexData interface {
	Data
	IndexFormat() gputypes.IndexFormat
	// Index returns the i'th index widened to 32 bits.
	Index(i int) uint32
}

// Vec4 is a 4 component single precision vector.
type Vec4 struct {
	X, Y, Z, W float32
}

type (
	Vec2Array   []ms2.Vec
	Vec3Array   []ms3.Vec
	Vec4Array   []Vec4
	UshortArray []uint16
	UintArray   []uint32
)

func (a Vec2Array) ValueCount() int { return len(a) }
func (a Vec2Array) ValueSize() int  { return 8 }
func (a Vec2Array) VertexFormat() gputypes.VertexFormat {
	return gputypes.VertexFormatFloat32x2
}

func (a Vec3Array) ValueCount() int { return len(a) }
func (a Vec3Array) ValueSize() int  { return 12 }
func (a Vec3Array) VertexFormat() gputypes.VertexFormat {
	return gputypes.VertexFormatFloat32x3
}

func (a Vec4Array) ValueCount() int { return len(a) }
func (a Vec4Array) ValueSize() int  { return 16 }
func (a Vec4Array) VertexFormat() gputypes.VertexFormat {
	return gputypes.VertexFormatFloat32x4
}

func (a UshortArray) ValueCount() int                   { return len(a) }
func (a UshortArray) ValueSize() int                    { return 2 }
func (a UshortArray) IndexFormat() gputypes.IndexFormat { return gputypes.IndexFormatUint16 }
func (a UshortArray) Index(i int) uint32                { return uint32(a[i]) }

func (a UintArray) ValueCount() int                   { return len(a) }
func (a UintArray) ValueSize() int                    { return 4 }
func (a UintArray) IndexFormat() gputypes.IndexFormat { return gputypes.IndexFormatUint32 }
func (a UintArray) Index(i int) uint32                { return a[i] }

// DataSize returns the size in bytes of d.
func DataSize(d Data) int {
	if d == nil {
		return 0
	}
	return d.ValueCount() * d.ValueSize()
}
