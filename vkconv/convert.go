// Package vkconv translates scene graph geometry into a [vkgraph] render
// graph: typed arrays are converted element by element and each drawable
// becomes a pipeline, transform, texture and geometry node chain.
package vkconv

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/vkgraph"
)

// ErrUnsupportedArray is returned when an array's element type has no render graph equivalent.
var ErrUnsupportedArray = errors.New("unsupported array type")

// ErrMissingArray is returned when a required array is absent.
var ErrMissingArray = errors.New("missing array")

func ConvertVec2(src scenegl.Vec2Array) vkgraph.Vec2Array {
	dst := make(vkgraph.Vec2Array, len(src))
	copy(dst, src)
	return dst
}

func ConvertVec3(src scenegl.Vec3Array) vkgraph.Vec3Array {
	dst := make(vkgraph.Vec3Array, len(src))
	copy(dst, src)
	return dst
}

func ConvertVec4(src scenegl.Vec4Array) vkgraph.Vec4Array {
	dst := make(vkgraph.Vec4Array, len(src))
	for i, v := range src {
		dst[i] = vkgraph.Vec4{X: v.X, Y: v.Y, Z: v.Z, W: v.W}
	}
	return dst
}

// Convert converts a 2, 3 or 4 component float array. A nil array yields
// [ErrMissingArray] and any other array yields [ErrUnsupportedArray].
func Convert(src scenegl.Array) (vkgraph.VertexData, error) {
	switch a := src.(type) {
	case scenegl.Vec2Array:
		return ConvertVec2(a), nil
	case scenegl.Vec3Array:
		return ConvertVec3(a), nil
	case scenegl.Vec4Array:
		return ConvertVec4(a), nil
	case nil:
		return nil, ErrMissingArray
	}
	return nil, fmt.Errorf("%T: %w", src, ErrUnsupportedArray)
}

// ConvertIndices converts the index list of de. 16 bit indices are used
// when every index fits, 32 bit otherwise.
func ConvertIndices(de *scenegl.DrawElements) vkgraph.IndexData {
	if de == nil {
		return vkgraph.UshortArray{}
	}
	wide := false
	for _, idx := range de.Indices {
		if idx > math.MaxUint16 {
			wide = true
			break
		}
	}
	if wide {
		dst := make(vkgraph.UintArray, len(de.Indices))
		copy(dst, de.Indices)
		return dst
	}
	dst := make(vkgraph.UshortArray, len(de.Indices))
	for i, idx := range de.Indices {
		dst[i] = uint16(idx)
	}
	return dst
}

// WhiteColors returns n white colors.
func WhiteColors(n int) vkgraph.Vec3Array {
	colors := make(vkgraph.Vec3Array, n)
	for i := range colors {
		colors[i].X, colors[i].Y, colors[i].Z = 1, 1, 1
	}
	return colors
}

// Colors converts per-vertex src colors to the 3 component colors bound by
// the pipeline. Alpha is dropped. When src does not hold n colors
// [WhiteColors] is returned instead.
func Colors(src scenegl.Array, n int) vkgraph.Vec3Array {
	switch a := src.(type) {
	case scenegl.Vec3Array:
		if len(a) == n {
			return ConvertVec3(a)
		}
	case scenegl.Vec4Array:
		if len(a) == n {
			colors := make(vkgraph.Vec3Array, n)
			for i, c := range a {
				colors[i] = c.XYZ()
			}
			return colors
		}
	}
	return WhiteColors(n)
}
