package glbuild

import (
	"regexp"
)

// RewriteRule is a single textual substitution applied to shader source.
// Replace is inserted literally.
type RewriteRule struct {
	Pattern *regexp.Regexp
	Replace string
}

// PushConstantsDecl is the push-constant block that replaces the legacy
// transform matrix uniforms in exported shaders.
const PushConstantsDecl = "layout(push_constant) uniform PushConstants {\n" +
	"mat4 projection;\n" +
	"mat4 view;\n" +
	"mat4 model;\n" +
	"mat3 normal;\n" +
	"} pc;\n"

// Rule order matters: declarations are rewritten before the usages they name.
var spirvRules = []RewriteRule{
	// Transform matrix declarations.
	{regexp.MustCompile(`uniform mat4 osg_ModelViewProjectionMatrix;\n`), PushConstantsDecl},
	{regexp.MustCompile(`uniform mat4 osg_ModelViewMatrix;`), ""},
	{regexp.MustCompile(`uniform mat4 osg_ProjectionMatrix;`), ""},
	{regexp.MustCompile(`uniform mat[34] osg_NormalMatrix;`), ""},

	// Matrix usages.
	{regexp.MustCompile(`\bosg_ModelViewProjectionMatrix\b`), "(pc.projection * pc.view * pc.model)"},
	{regexp.MustCompile(`\bosg_ModelViewMatrix\b`), "(pc.view * pc.model)"},
	{regexp.MustCompile(`\bosg_NormalMatrix\b`), "pc.normal"},

	// Vertex inputs.
	{regexp.MustCompile(`\bosg_Vertex\b`), "inPosition"},
	{regexp.MustCompile(`\bosg_Normal\b`), "inNormal"},
	{regexp.MustCompile(`\bosg_MultiTexCoord0\b`), "inTexCoord"},
}

// SPIRVRules returns the ordered rules applied by [RewriteSPIRV].
func SPIRVRules() []RewriteRule {
	return append([]RewriteRule(nil), spirvRules...)
}

// Rewrite applies rules to src in order.
func Rewrite(src string, rules []RewriteRule) string {
	for _, rule := range rules {
		src = rule.Pattern.ReplaceAllLiteralString(src, rule.Replace)
	}
	return src
}

// RewriteSPIRV rewrites generated legacy GLSL into source suitable for
// compilation to SPIR-V: transform uniforms become a single push-constant
// block and legacy vertex input names become generic ones.
func RewriteSPIRV(src string) string {
	return Rewrite(src, spirvRules)
}
