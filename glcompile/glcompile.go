// Package glcompile compiles generated shader programs with the host's
// OpenGL driver. It requires cgo and a display; builds without cgo return
// [ErrNoCGO] from every function.
package glcompile

import (
	"errors"
	"fmt"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/glbuild"
)

// ErrNoCGO is returned when the package is built without cgo or with TinyGo.
var ErrNoCGO = errors.New("GL shader compilation requires CGo and is not supported on TinyGo")

// sources returns the null terminated vertex and fragment sources of prog.
func sources(prog *scenegl.Program) (vert, frag string, err error) {
	if prog == nil {
		return "", "", errors.New("nil program")
	}
	for _, s := range prog.Shaders() {
		switch s.Type {
		case glbuild.VertexShader:
			vert = s.Source + "\x00"
		case glbuild.FragmentShader:
			frag = s.Source + "\x00"
		default:
			return "", "", fmt.Errorf("program %q: %s stage not supported", prog.Name, s.Type)
		}
	}
	if vert == "" || frag == "" {
		return "", "", fmt.Errorf("program %q: missing vertex or fragment stage", prog.Name)
	}
	return vert, frag, nil
}
