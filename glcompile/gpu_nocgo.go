//go:build tinygo || !cgo

package glcompile

import "github.com/soypat/scenegl"

func Init1x1GLFW() (terminate func(), err error) {
	return nil, ErrNoCGO
}

func Validate(prog *scenegl.Program) error {
	if _, _, err := sources(prog); err != nil {
		return err
	}
	return ErrNoCGO
}
