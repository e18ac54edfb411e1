// Package glbuild generates GLSL vertex and fragment shader source from a
// [FeatureMask] that describes which fixed-function shading features a
// drawable uses. Generation is deterministic: the same mask and flags always
// yield byte-identical source.
package glbuild

import (
	"io"
	"strconv"
	"strings"

	"github.com/soypat/scenegl/glbuild/glsllib"
)

// VersionStr is the header every generated shader starts with.
const VersionStr = "#version 450\n#extension GL_ARB_separate_shader_objects : enable\n"

// FeatureMask selects the shading features a generated program supports.
type FeatureMask uint8

const (
	// Lighting enables per-fragment Blinn lighting from a single light source.
	Lighting FeatureMask = 1 << iota
	// DiffuseMap samples the base color from the texture in unit 0.
	DiffuseMap
	// NormalMap perturbs the normal with the texture in unit 1 in tangent space.
	// Requires a tangent vertex attribute at [TangentLocation].
	NormalMap
)

// NumMasks is the number of distinct feature combinations.
const NumMasks = 1 << 3

// Vertex attribute locations used by generated programs.
const (
	VertexLocation   = 0
	NormalLocation   = 1
	TexCoordLocation = 3
	TangentLocation  = 6
)

// Texture units and sampler bindings used by generated programs.
const (
	DiffuseMapUnit = 0
	NormalMapUnit  = 1
)

func (m FeatureMask) Has(f FeatureMask) bool { return m&f != 0 }

func (m FeatureMask) String() string {
	if m == 0 {
		return "None"
	}
	var sb strings.Builder
	names := [...]string{"Lighting", "DiffuseMap", "NormalMap"}
	for i, name := range names {
		if m&(1<<i) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(name)
	}
	if sb.Len() == 0 {
		return "Unknown"
	}
	return sb.String()
}

// ShaderName returns the canonical program name for a mask, i.e: "DiffuseNormalLit".
func ShaderName(mask FeatureMask) string {
	return string(AppendShaderName(nil, mask))
}

// AppendShaderName appends the canonical program name of mask to b.
func AppendShaderName(b []byte, mask FeatureMask) []byte {
	if mask.Has(DiffuseMap) {
		b = append(b, "Diffuse"...)
	}
	if mask.Has(NormalMap) {
		b = append(b, "Normal"...)
	}
	if mask.Has(Lighting) {
		b = append(b, "Lit"...)
	} else {
		b = append(b, "Unlit"...)
	}
	return b
}

// ShaderType is the pipeline stage a shader runs in.
type ShaderType uint8

const (
	VertexShader ShaderType = iota
	FragmentShader
	GeometryShader
)

func (st ShaderType) String() string {
	switch st {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case GeometryShader:
		return "geometry"
	}
	return "unknown"
}

// Ext returns the file extension used when exporting a shader of this type.
// Geometry shaders have no export extension.
func (st ShaderType) Ext() string {
	switch st {
	case VertexShader:
		return ".vert"
	case FragmentShader:
		return ".frag"
	}
	return ""
}

// Flags modify generated source without changing the program's feature set.
type Flags uint8

const (
	// FlagFlipNormalGreen negates the green channel of the decoded normal map texel.
	// Use with normal maps authored in the DirectX (Y-down) convention.
	FlagFlipNormalGreen Flags = 1 << iota
)

// Programmer implements shader generation logic for a [FeatureMask].
// A Programmer reuses an internal buffer and is not safe for concurrent use.
type Programmer struct {
	scratch []byte
	flags   Flags
}

// NewDefaultProgrammer returns a Programmer with no flags set.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		scratch: make([]byte, 0, 4096),
	}
}

func (p *Programmer) SetFlags(flags Flags) { p.flags = flags }

func (p *Programmer) Flags() Flags { return p.flags }

// Generate returns the vertex and fragment shader source for mask.
func (p *Programmer) Generate(mask FeatureMask) (vertex, fragment string) {
	p.scratch = AppendVertexSource(p.scratch[:0], mask)
	vertex = string(p.scratch)
	p.scratch = AppendFragmentSource(p.scratch[:0], mask, p.flags)
	fragment = string(p.scratch)
	return vertex, fragment
}

// WriteVertex writes the vertex shader source for mask to w.
func (p *Programmer) WriteVertex(w io.Writer, mask FeatureMask) (int, error) {
	p.scratch = AppendVertexSource(p.scratch[:0], mask)
	return w.Write(p.scratch)
}

// WriteFragment writes the fragment shader source for mask to w.
func (p *Programmer) WriteFragment(w io.Writer, mask FeatureMask) (int, error) {
	p.scratch = AppendFragmentSource(p.scratch[:0], mask, p.flags)
	return w.Write(p.scratch)
}

// Generate returns the vertex and fragment shader source for mask with no flags set.
func Generate(mask FeatureMask) (vertex, fragment string) {
	var p Programmer
	return p.Generate(mask)
}

type features struct {
	lit, diffuse, normalMap bool
	// normal is set when a per-vertex normal is consumed.
	normal bool
	// tex0 is set when texture coordinates from unit 0 are consumed.
	tex0 bool
	// shaded is set when the lighting equation is evaluated.
	shaded bool
}

func featuresOf(mask FeatureMask) features {
	f := features{
		lit:       mask.Has(Lighting),
		diffuse:   mask.Has(DiffuseMap),
		normalMap: mask.Has(NormalMap),
	}
	f.normal = f.lit || f.normalMap
	f.tex0 = f.diffuse || f.normalMap
	f.shaded = f.lit || f.normalMap
	return f
}

// AppendVertexSource appends the vertex shader source for mask to dst.
func AppendVertexSource(dst []byte, mask FeatureMask) []byte {
	f := featuresOf(mask)
	dst = append(dst, VersionStr...)

	// Uniforms.
	dst = append(dst, "uniform mat4 osg_ModelViewProjectionMatrix;\n"...)
	if f.shaded {
		dst = append(dst, "uniform mat4 osg_ModelViewMatrix;\n"...)
	}
	if f.normal {
		dst = append(dst, "uniform mat3 osg_NormalMatrix;\n"...)
	}
	if f.shaded {
		dst = append(dst, glsllib.LightSourceDecl()...)
	}

	// Inputs.
	dst = appendInDecl(dst, VertexLocation, "vec3", "osg_Vertex")
	if f.normal {
		dst = appendInDecl(dst, NormalLocation, "vec3", "osg_Normal")
	}
	if f.tex0 {
		dst = appendInDecl(dst, TexCoordLocation, "vec2", "osg_MultiTexCoord0")
	}
	if f.normalMap {
		dst = appendInDecl(dst, TangentLocation, "vec3", "tangent")
	}

	// Outputs.
	dst = appendVaryings(dst, "out", f)

	dst = append(dst, "\nvoid main()\n{\n"...)
	dst = append(dst, "  gl_Position = osg_ModelViewProjectionMatrix * vec4(osg_Vertex, 1.0);\n"...)
	if f.tex0 {
		dst = append(dst, "  texCoord0 = osg_MultiTexCoord0.st;\n"...)
	}
	switch {
	case f.normalMap:
		// View and light directions are expressed in tangent space.
		dst = append(dst, `  vec3 n = osg_NormalMatrix * osg_Normal;
  vec3 t = osg_NormalMatrix * tangent;
  vec3 b = cross(n, t);
  vec3 dir = -vec3(osg_ModelViewMatrix * vec4(osg_Vertex, 1.0));
  viewDir.x = dot(dir, t);
  viewDir.y = dot(dir, b);
  viewDir.z = dot(dir, n);
  vec4 lpos = osg_LightSource.position;
  if (lpos.w == 0.0)
    dir = lpos.xyz;
  else
    dir += lpos.xyz;
  lightDir.x = dot(dir, t);
  lightDir.y = dot(dir, b);
  lightDir.z = dot(dir, n);
`...)
	case f.lit:
		dst = append(dst, `  normalDir = osg_NormalMatrix * osg_Normal;
  vec3 dir = -vec3(osg_ModelViewMatrix * vec4(osg_Vertex, 1.0));
  viewDir = dir;
  vec4 lpos = osg_LightSource.position;
  if (lpos.w == 0.0)
    lightDir = lpos.xyz;
  else
    lightDir = lpos.xyz + dir;
`...)
	}
	dst = append(dst, "}\n"...)
	return dst
}

// AppendFragmentSource appends the fragment shader source for mask to dst.
func AppendFragmentSource(dst []byte, mask FeatureMask, flags Flags) []byte {
	f := featuresOf(mask)
	dst = append(dst, VersionStr...)

	// Uniforms.
	if f.shaded {
		dst = append(dst, glsllib.LightSourceDecl()...)
		dst = append(dst, glsllib.MaterialDecl()...)
	}
	if f.diffuse {
		dst = appendSamplerDecl(dst, DiffuseMapUnit, "diffuseMap")
	}
	if f.normalMap {
		dst = appendSamplerDecl(dst, NormalMapUnit, "normalMap")
	}

	// Inputs and outputs.
	dst = appendVaryings(dst, "in", f)
	dst = append(dst, "layout(location = 0) out vec4 outColor;\n"...)

	dst = append(dst, "\nvoid main()\n{\n"...)
	if f.diffuse {
		dst = append(dst, "  vec4 base = texture(diffuseMap, texCoord0.st);\n"...)
	} else {
		dst = append(dst, "  vec4 base = vec4(1.0);\n"...)
	}
	if f.normalMap {
		dst = append(dst, "  vec3 normalDir = texture(normalMap, texCoord0.st).xyz*2.0-1.0;\n"...)
		if flags&FlagFlipNormalGreen != 0 {
			dst = append(dst, "  normalDir.g = -normalDir.g;\n"...)
		}
	}
	if f.shaded {
		dst = append(dst, glsllib.BlinnBody()...)
	} else {
		dst = append(dst, "  vec4 color = base;\n"...)
	}
	dst = append(dst, "  outColor = color;\n}\n"...)
	return dst
}

// appendVaryings appends the interface block shared between the vertex
// and fragment stage. qualifier is "out" for the vertex stage and "in" for the fragment stage.
func appendVaryings(dst []byte, qualifier string, f features) []byte {
	if f.tex0 {
		dst = appendVaryingDecl(dst, 0, qualifier, "vec2", "texCoord0")
	}
	// With normal mapping the normal is read from the texture, not interpolated.
	if f.lit && !f.normalMap {
		dst = appendVaryingDecl(dst, 1, qualifier, "vec3", "normalDir")
	}
	if f.shaded {
		dst = appendVaryingDecl(dst, 2, qualifier, "vec3", "viewDir")
		dst = appendVaryingDecl(dst, 3, qualifier, "vec3", "lightDir")
	}
	return dst
}

func appendInDecl(dst []byte, location int, typename, name string) []byte {
	return appendVaryingDecl(dst, location, "in", typename, name)
}

// appendVaryingDecl appends a declaration of the form:
//
//	layout(location = <location>) <qualifier> <typename> <name>;
func appendVaryingDecl(dst []byte, location int, qualifier, typename, name string) []byte {
	dst = append(dst, "layout(location = "...)
	dst = strconv.AppendInt(dst, int64(location), 10)
	dst = append(dst, ") "...)
	dst = append(dst, qualifier...)
	dst = append(dst, ' ')
	dst = append(dst, typename...)
	dst = append(dst, ' ')
	dst = append(dst, name...)
	dst = append(dst, ";\n"...)
	return dst
}

func appendSamplerDecl(dst []byte, binding int, name string) []byte {
	dst = append(dst, "layout(binding = "...)
	dst = strconv.AppendInt(dst, int64(binding), 10)
	dst = append(dst, ") uniform sampler2D "...)
	dst = append(dst, name...)
	dst = append(dst, ";\n"...)
	return dst
}
