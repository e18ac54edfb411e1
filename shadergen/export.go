package shadergen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/glbuild"
)

// SetImageDirectory rewrites the file name of every texture image reachable
// from root to dir joined with the image's base file name.
func SetImageDirectory(root *scenegl.Node, dir string) {
	scenegl.Walk(root, func(n *scenegl.Node) bool {
		setImageDirectory(n.StateSet(), dir)
		for _, g := range n.Drawables() {
			if g != nil {
				setImageDirectory(g.StateSet(), dir)
			}
		}
		return true
	})
}

func setImageDirectory(ss *scenegl.StateSet, dir string) {
	if ss == nil {
		return
	}
	rewrite := func(attrs []scenegl.Attribute) {
		for _, attr := range attrs {
			tex, ok := attr.(*scenegl.Texture2D)
			if !ok || tex.Image == nil {
				continue
			}
			tex.Image.FileName = filepath.Join(dir, filepath.Base(tex.Image.FileName))
		}
	}
	rewrite(ss.Attributes())
	for unit := 0; unit < ss.NumTextureUnits(); unit++ {
		rewrite(ss.TextureAttributes(unit))
	}
}

// ExportShaders writes the stages of every program attached to a state set
// reachable from root into dir. See [ExportProgram].
func ExportShaders(root *scenegl.Node, dir string) error {
	var errs []error
	exported := make(map[*scenegl.Program]bool)
	export := func(ss *scenegl.StateSet) {
		if ss == nil {
			return
		}
		attr, _ := ss.Attribute(scenegl.AttrProgram)
		prog, ok := attr.(*scenegl.Program)
		if !ok || exported[prog] {
			return
		}
		exported[prog] = true
		if err := ExportProgram(prog, dir); err != nil {
			errs = append(errs, err)
		}
	}
	scenegl.Walk(root, func(n *scenegl.Node) bool {
		export(n.StateSet())
		for _, g := range n.Drawables() {
			if g != nil {
				export(g.StateSet())
			}
		}
		return true
	})
	return errors.Join(errs...)
}

// ExportProgram writes each stage of prog to dir as <shader name><ext> after
// rewriting it with [glbuild.RewriteSPIRV]. Existing files are truncated.
// Geometry stages are not supported: they are skipped with a warning.
func ExportProgram(prog *scenegl.Program, dir string) error {
	if prog == nil {
		return nil
	}
	for _, shader := range prog.Shaders() {
		ext := shader.Type.Ext()
		if ext == "" {
			scenegl.Logger().Warn("shadergen: skipping unsupported shader stage", "program", prog.Name, "stage", shader.Type.String())
			continue
		}
		name := shader.Name
		if name == "" {
			name = prog.Name
		}
		path := filepath.Join(dir, name+ext)
		err := os.WriteFile(path, []byte(glbuild.RewriteSPIRV(shader.Source)), 0666)
		if err != nil {
			return fmt.Errorf("exporting %s shader of %q: %w", shader.Type, prog.Name, err)
		}
	}
	return nil
}
