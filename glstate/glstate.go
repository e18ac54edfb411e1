// Package glstate accumulates the effective fixed-function state of a scene
// graph traversal from a stack of state sets.
package glstate

import (
	"slices"

	"github.com/soypat/scenegl"
)

// State is a stack of state sets. Queries compose the stack from bottom to
// top: a value that is not Inherit replaces the value below it unless the
// value below carries Override and the new one is not Protected.
// Query results depend only on the current stack contents.
//
// The zero value is an empty stack ready for use.
type State struct {
	stack []*scenegl.StateSet
}

// Push pushes ss onto the stack. A nil ss occupies a slot but contributes no state.
func (s *State) Push(ss *scenegl.StateSet) {
	s.stack = append(s.stack, ss)
}

// Pop removes the top state set. It reports false if the stack was empty.
func (s *State) Pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// PopAll empties the stack.
func (s *State) PopAll() {
	clear(s.stack)
	s.stack = s.stack[:0]
}

// Remove removes the state set at position i counting from the bottom of the stack.
// It reports false if i is out of range.
func (s *State) Remove(i int) bool {
	if i < 0 || i >= len(s.stack) {
		return false
	}
	s.stack = slices.Delete(s.stack, i, i+1)
	return true
}

// Depth returns the number of state sets on the stack.
func (s *State) Depth() int { return len(s.stack) }

// Top returns the most recently pushed state set, or nil if the stack is empty.
func (s *State) Top() *scenegl.StateSet {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// StateSets returns a copy of the stack, bottom first.
func (s *State) StateSets() []*scenegl.StateSet {
	return slices.Clone(s.stack)
}

// Mode returns the effective value of mode, or def if no state set on the stack sets it.
func (s *State) Mode(mode scenegl.Mode, def scenegl.ModeValue) scenegl.ModeValue {
	_, v, ok := resolve(s.stack, func(ss *scenegl.StateSet) (struct{}, scenegl.ModeValue, bool) {
		v, ok := ss.Mode(mode)
		return struct{}{}, v, ok
	})
	if !ok {
		return def
	}
	return v
}

// TextureMode returns the effective value of mode on texture unit, or def if unset.
func (s *State) TextureMode(unit int, mode scenegl.Mode, def scenegl.ModeValue) scenegl.ModeValue {
	_, v, ok := resolve(s.stack, func(ss *scenegl.StateSet) (struct{}, scenegl.ModeValue, bool) {
		v, ok := ss.TextureMode(unit, mode)
		return struct{}{}, v, ok
	})
	if !ok {
		return def
	}
	return v
}

// Attribute returns the effective attribute in slot typ, or nil if none is set.
func (s *State) Attribute(typ scenegl.AttributeType) scenegl.Attribute {
	attr, _, _ := resolve(s.stack, func(ss *scenegl.StateSet) (scenegl.Attribute, scenegl.ModeValue, bool) {
		attr, v := ss.Attribute(typ)
		return attr, v, attr != nil
	})
	return attr
}

// TextureAttribute returns the effective attribute on texture unit in slot typ, or nil if none is set.
func (s *State) TextureAttribute(unit int, typ scenegl.AttributeType) scenegl.Attribute {
	attr, _, _ := resolve(s.stack, func(ss *scenegl.StateSet) (scenegl.Attribute, scenegl.ModeValue, bool) {
		attr, v := ss.TextureAttribute(unit, typ)
		return attr, v, attr != nil
	})
	return attr
}

// Uniform returns the effective uniform named name, or nil if none is set.
func (s *State) Uniform(name string) *scenegl.Uniform {
	u, _, _ := resolve(s.stack, func(ss *scenegl.StateSet) (*scenegl.Uniform, scenegl.ModeValue, bool) {
		u, v := ss.Uniform(name)
		return u, v, u != nil
	})
	return u
}

func resolve[T any](stack []*scenegl.StateSet, lookup func(*scenegl.StateSet) (T, scenegl.ModeValue, bool)) (result T, value scenegl.ModeValue, found bool) {
	for _, ss := range stack {
		if ss == nil {
			continue
		}
		got, v, ok := lookup(ss)
		if !ok || v.IsInherit() {
			continue
		}
		if found && value.IsOverride() && !v.IsProtected() {
			continue
		}
		result, value, found = got, v, true
	}
	return result, value, found
}
