// Package glsllib holds GLSL snippets shared by the generated programs.
package glsllib

import (
	_ "embed"
)

//go:embed lightsource.glsl
var lightSourceSrc []byte

// LightSourceDecl declares the single light source uniform:
//
//	uniform osg_LightSourceParameters osg_LightSource;
func LightSourceDecl() []byte { return lightSourceSrc }

//go:embed material.glsl
var materialSrc []byte

// MaterialDecl declares the material uniform block, set by the shader generator
// from a material attribute or defaults:
//
//	uniform osgMaterial osg_Material;
func MaterialDecl() []byte { return materialSrc }

//go:embed blinn.glsl
var blinnSrc []byte

// BlinnBody is a statement list evaluating Blinn-Phong shading into a
// vec4 named color. It reads base, normalDir, lightDir and viewDir from scope.
func BlinnBody() []byte { return blinnSrc }
