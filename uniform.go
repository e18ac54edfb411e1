package scenegl

import (
	"strconv"

	"github.com/soypat/geometry/ms3"
)

// UniformType is the GLSL type of a [Uniform].
type UniformType uint8

const (
	UniformUndefined UniformType = iota
	UniformInt
	UniformFloat
	UniformVec3
	UniformVec4
)

func (t UniformType) String() string {
	switch t {
	case UniformInt:
		return "int"
	case UniformFloat:
		return "float"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	}
	return "undefined"
}

// Uniform is a named shader parameter. Uniforms are treated as immutable once
// attached to a [StateSet] since state sets may share them.
type Uniform struct {
	Name string
	typ  UniformType
	i    int32
	v    [4]float32
}

func NewIntUniform(name string, v int32) *Uniform {
	return &Uniform{Name: name, typ: UniformInt, i: v}
}

func NewFloatUniform(name string, v float32) *Uniform {
	return &Uniform{Name: name, typ: UniformFloat, v: [4]float32{v}}
}

func NewVec3Uniform(name string, v ms3.Vec) *Uniform {
	return &Uniform{Name: name, typ: UniformVec3, v: [4]float32{v.X, v.Y, v.Z}}
}

func NewVec4Uniform(name string, v Vec4) *Uniform {
	return &Uniform{Name: name, typ: UniformVec4, v: v.Array()}
}

func (u *Uniform) Type() UniformType { return u.typ }

// Int returns the value of an int uniform.
func (u *Uniform) Int() int32 { return u.i }

// Float returns the value of a float uniform.
func (u *Uniform) Float() float32 { return u.v[0] }

// Vec3 returns the value of a vec3 uniform.
func (u *Uniform) Vec3() ms3.Vec { return ms3.Vec{X: u.v[0], Y: u.v[1], Z: u.v[2]} }

// Vec4 returns the value of a vec4 uniform.
func (u *Uniform) Vec4() Vec4 { return Vec4{X: u.v[0], Y: u.v[1], Z: u.v[2], W: u.v[3]} }

// AppendGLSL appends the uniform's value as a GLSL literal, i.e: "vec4(1,1,1,1)".
func (u *Uniform) AppendGLSL(b []byte) []byte {
	n := 0
	switch u.typ {
	case UniformInt:
		return strconv.AppendInt(b, int64(u.i), 10)
	case UniformFloat:
		return strconv.AppendFloat(b, float64(u.v[0]), 'f', -1, 32)
	case UniformVec3:
		b = append(b, "vec3("...)
		n = 3
	case UniformVec4:
		b = append(b, "vec4("...)
		n = 4
	default:
		return b
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, float64(u.v[i]), 'f', -1, 32)
	}
	return append(b, ')')
}

func (u *Uniform) String() string {
	b := append([]byte(u.typ.String()), ' ')
	b = append(b, u.Name...)
	b = append(b, " = "...)
	return string(u.AppendGLSL(b))
}
