//go:build !tinygo && cgo

package glcompile

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/scenegl"
)

// Init1x1GLFW starts a hidden 1x1 sized GLFW window with a current GL 4.6
// core context so programs can be compiled. It returns a termination
// function that should be called when the user is done compiling.
// Init1x1GLFW must be called from the main OS thread.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:      "scenegl",
		Version:    [2]int{4, 6},
		Width:      1,
		Height:     1,
		HideWindow: true,
	})
	if err != nil {
		return nil, err
	}
	scenegl.Logger().Debug("glcompile: context ready", "version", glgl.Version())
	return terminate, nil
}

// Compile compiles and links prog with its attribute bindings applied.
// A GL context must be current on the calling thread.
func Compile(prog *scenegl.Program) (glgl.Program, error) {
	vert, frag, err := sources(prog)
	if err != nil {
		return glgl.Program{}, err
	}
	glprog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vert,
		Fragment: frag,
	})
	if err != nil {
		return glgl.Program{}, fmt.Errorf("program %q: %w", prog.Name, err)
	}
	bindings := prog.AttribBindings()
	if len(bindings) == 0 {
		return glprog, nil
	}
	id := glprog.ID()
	for name, loc := range bindings {
		gl.BindAttribLocation(id, loc, gl.Str(name+"\x00"))
	}
	// Bindings take effect on the next link.
	gl.LinkProgram(id)
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := programLog(id)
		glprog.Delete()
		return glgl.Program{}, fmt.Errorf("program %q: relinking with attribute bindings: %s", prog.Name, msg)
	}
	return glprog, glgl.Err()
}

// Validate compiles and links prog and releases it.
func Validate(prog *scenegl.Program) error {
	glprog, err := Compile(prog)
	if err != nil {
		return err
	}
	glprog.Delete()
	return nil
}

// AttribLocation returns the location the linked program assigned to the vertex input name.
func AttribLocation(p glgl.Program, name string) (uint32, error) {
	return p.AttribLocation(name + "\x00")
}

func programLog(id uint32) string {
	var length int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return "no info log"
	}
	msg := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(id, length, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}
