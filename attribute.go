package scenegl

import (
	"maps"

	"github.com/soypat/scenegl/glbuild"
)

// Material is the fixed-function front face material.
type Material struct {
	Ambient   Vec4
	Diffuse   Vec4
	Specular  Vec4
	Emission  Vec4
	Shininess float32
}

func (*Material) AttributeType() AttributeType { return AttrMaterial }

// Image references texel data by file name. Data may be nil until the image is loaded.
type Image struct {
	FileName string
	Width    int
	Height   int
	// Data holds tightly packed RGBA8 texels when loaded.
	Data []byte
}

// Texture2D binds an [Image] to a texture unit.
type Texture2D struct {
	Image *Image
}

func (*Texture2D) AttributeType() AttributeType { return AttrTexture }

// Shader is a single stage of a [Program].
type Shader struct {
	Type   glbuild.ShaderType
	Name   string
	Source string
}

// Program is a linked set of shader stages. Attaching a Program to a
// [StateSet] replaces fixed-function shading for the drawables below it.
type Program struct {
	Name     string
	shaders  []*Shader
	bindings map[string]uint32
}

func (*Program) AttributeType() AttributeType { return AttrProgram }

// NewProgram returns an empty program named name.
func NewProgram(name string) *Program {
	return &Program{Name: name}
}

// AddShader appends a shader stage to the program.
func (p *Program) AddShader(s *Shader) {
	p.shaders = append(p.shaders, s)
}

// Shaders returns the program's stages in the order they were added.
func (p *Program) Shaders() []*Shader { return p.shaders }

// Shader returns the first stage of type typ, or nil if the program has none.
func (p *Program) Shader(typ glbuild.ShaderType) *Shader {
	for _, s := range p.shaders {
		if s.Type == typ {
			return s
		}
	}
	return nil
}

// BindAttribLocation binds the vertex input named name to location.
func (p *Program) BindAttribLocation(name string, location uint32) {
	if p.bindings == nil {
		p.bindings = make(map[string]uint32)
	}
	p.bindings[name] = location
}

// AttribLocation returns the location bound to name by [Program.BindAttribLocation].
func (p *Program) AttribLocation(name string) (uint32, bool) {
	loc, ok := p.bindings[name]
	return loc, ok
}

// AttribBindings returns a copy of the program's attribute bindings.
func (p *Program) AttribBindings() map[string]uint32 {
	return maps.Clone(p.bindings)
}
