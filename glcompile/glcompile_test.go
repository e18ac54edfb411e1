//go:build !tinygo && cgo

package glcompile_test

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"testing"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/glbuild"
	"github.com/soypat/scenegl/glcompile"
	"github.com/soypat/scenegl/shadergen"
)

var glAvailable bool

// GL calls must happen on the thread owning the context, so all work
// requiring a context runs from TestMain on the main thread.
func TestMain(m *testing.M) {
	flag.Parse()
	runtime.LockOSThread()
	exit := 0
	terminate, err := glcompile.Init1x1GLFW()
	if err != nil {
		log.Println("skipping GL compilation:", err)
	} else {
		glAvailable = true
		if err := compileAll(); err != nil {
			log.Println(err)
			exit = 1
		}
		terminate()
	}
	runtime.UnlockOSThread()
	os.Exit(m.Run() | exit)
}

func compileAll() error {
	for mask := glbuild.FeatureMask(0); mask < glbuild.NumMasks; mask++ {
		prog := shadergen.NewProgram(mask, 0)
		glprog, err := glcompile.Compile(prog)
		if err != nil {
			return err
		}
		if mask.Has(glbuild.NormalMap) {
			loc, err := glcompile.AttribLocation(glprog, "tangent")
			if err != nil {
				glprog.Delete()
				return err
			} else if loc != glbuild.TangentLocation {
				glprog.Delete()
				return fmt.Errorf("%s: tangent bound to %d", mask, loc)
			}
		}
		glprog.Delete()
	}
	return nil
}

func TestValidateRejectsIncomplete(t *testing.T) {
	prog := scenegl.NewProgram("vertexonly")
	prog.AddShader(&scenegl.Shader{Type: glbuild.VertexShader, Source: "#version 450\nvoid main(){}\n"})
	if err := glcompile.Validate(prog); err == nil {
		t.Fatal("expected error for program without fragment stage")
	}
	if err := glcompile.Validate(nil); err == nil {
		t.Fatal("expected error for nil program")
	}
}

func TestGLAvailable(t *testing.T) {
	if !glAvailable {
		t.Skip("no GL context available")
	}
}
