// Package scenegl models a retained-mode fixed-function scene graph: nodes
// carrying optional state sets, drawables with typed vertex arrays and
// primitive sets, and the fixed-function state (modes, materials, textures,
// lights) that the shadergen package replaces with generated programs.
package scenegl

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/soypat/geometry/ms3"
)

// Vec4 is a 4 component single precision vector used for colors and homogeneous positions.
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec4) Array() [4]float32 { return [4]float32{v.X, v.Y, v.Z, v.W} }

// XYZ returns the first three components of v.
func (v Vec4) XYZ() ms3.Vec { return ms3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// nopHandler discards all records. Enabled returns false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by scenegl and its sub-packages.
// By default nothing is logged. Pass nil to restore silent behavior.
// SetLogger is safe for concurrent use.
//
// Levels used:
//   - [slog.LevelDebug]: per-drawable shading decisions, skipped primitive sets.
//   - [slog.LevelInfo]: program builds.
//   - [slog.LevelWarn]: unsupported arrays, skipped shader stages, missing files.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call it so they share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
