package scenegl

import (
	"slices"
)

// ModeValue is a bitfield controlling whether a mode or attribute is enabled
// and how it composes with values set higher or lower in the scene graph.
type ModeValue uint8

const (
	Off ModeValue = 0
	On  ModeValue = 1 << (iota - 1)
	// Override forces the value onto descendants unless they mark theirs Protected.
	Override
	// Protected shields the value from an ancestor's Override.
	Protected
	// Inherit defers to whatever value an ancestor set.
	Inherit
)

func (v ModeValue) IsOn() bool        { return v&On != 0 }
func (v ModeValue) IsOverride() bool  { return v&Override != 0 }
func (v ModeValue) IsProtected() bool { return v&Protected != 0 }
func (v ModeValue) IsInherit() bool   { return v&Inherit != 0 }

// Mode is a fixed-function enable flag. Values match the GL enumerants.
type Mode uint32

const (
	ModeCullFace  Mode = 0x0B44
	ModeLighting  Mode = 0x0B50
	ModeDepthTest Mode = 0x0B71
	ModeBlend     Mode = 0x0BE2
	ModeTexture2D Mode = 0x0DE1
	ModeLight0    Mode = 0x4000
)

// AttributeType identifies the slot a state attribute occupies in a [StateSet].
type AttributeType uint8

const (
	AttrUndefined AttributeType = iota
	AttrMaterial
	AttrTexture
	AttrProgram
)

func (t AttributeType) String() string {
	switch t {
	case AttrMaterial:
		return "material"
	case AttrTexture:
		return "texture"
	case AttrProgram:
		return "program"
	}
	return "undefined"
}

// Attribute is a piece of fixed-function or programmable state stored in a [StateSet].
type Attribute interface {
	AttributeType() AttributeType
}

type attrEntry struct {
	attr  Attribute
	value ModeValue
}

type uniformEntry struct {
	u     *Uniform
	value ModeValue
}

// StateSet bundles modes, attributes, per texture unit state and uniforms
// attachable to a [Node] or [Geometry]. The zero value is ready to use.
type StateSet struct {
	modes    map[Mode]ModeValue
	attrs    map[AttributeType]attrEntry
	texModes []map[Mode]ModeValue
	texAttrs []map[AttributeType]attrEntry
	// uniforms keeps insertion order.
	uniforms []uniformEntry
}

// NewStateSet returns an empty state set.
func NewStateSet() *StateSet { return &StateSet{} }

// SetMode sets mode to value.
func (ss *StateSet) SetMode(mode Mode, value ModeValue) {
	if ss.modes == nil {
		ss.modes = make(map[Mode]ModeValue)
	}
	ss.modes[mode] = value
}

// Mode returns the value stored for mode and whether it was present.
func (ss *StateSet) Mode(mode Mode) (ModeValue, bool) {
	v, ok := ss.modes[mode]
	return v, ok
}

func (ss *StateSet) RemoveMode(mode Mode) { delete(ss.modes, mode) }

// SetAttribute stores attr in its slot with value On.
func (ss *StateSet) SetAttribute(attr Attribute) {
	ss.SetAttributeValue(attr, On)
}

// SetAttributeValue stores attr in its slot with the given override value.
func (ss *StateSet) SetAttributeValue(attr Attribute, value ModeValue) {
	if ss.attrs == nil {
		ss.attrs = make(map[AttributeType]attrEntry)
	}
	ss.attrs[attr.AttributeType()] = attrEntry{attr: attr, value: value}
}

// Attribute returns the attribute stored in slot typ, or nil if absent.
func (ss *StateSet) Attribute(typ AttributeType) (Attribute, ModeValue) {
	e, ok := ss.attrs[typ]
	if !ok {
		return nil, Inherit
	}
	return e.attr, e.value
}

func (ss *StateSet) RemoveAttribute(typ AttributeType) { delete(ss.attrs, typ) }

// Attributes returns the non texture attributes ordered by type.
func (ss *StateSet) Attributes() []Attribute {
	return sortedAttributes(ss.attrs)
}

// NumTextureUnits returns one plus the highest texture unit with state stored.
func (ss *StateSet) NumTextureUnits() int {
	return max(len(ss.texModes), len(ss.texAttrs))
}

// SetTextureMode sets mode on texture unit.
func (ss *StateSet) SetTextureMode(unit int, mode Mode, value ModeValue) {
	for len(ss.texModes) <= unit {
		ss.texModes = append(ss.texModes, nil)
	}
	if ss.texModes[unit] == nil {
		ss.texModes[unit] = make(map[Mode]ModeValue)
	}
	ss.texModes[unit][mode] = value
}

// TextureMode returns the value stored for mode on texture unit and whether it was present.
func (ss *StateSet) TextureMode(unit int, mode Mode) (ModeValue, bool) {
	if unit < 0 || unit >= len(ss.texModes) {
		return Off, false
	}
	v, ok := ss.texModes[unit][mode]
	return v, ok
}

func (ss *StateSet) RemoveTextureMode(unit int, mode Mode) {
	if unit < 0 || unit >= len(ss.texModes) {
		return
	}
	delete(ss.texModes[unit], mode)
}

// SetTextureAttribute stores attr on texture unit with value On.
func (ss *StateSet) SetTextureAttribute(unit int, attr Attribute) {
	ss.SetTextureAttributeValue(unit, attr, On)
}

// SetTextureAttributeValue stores attr on texture unit with the given override value.
func (ss *StateSet) SetTextureAttributeValue(unit int, attr Attribute, value ModeValue) {
	for len(ss.texAttrs) <= unit {
		ss.texAttrs = append(ss.texAttrs, nil)
	}
	if ss.texAttrs[unit] == nil {
		ss.texAttrs[unit] = make(map[AttributeType]attrEntry)
	}
	ss.texAttrs[unit][attr.AttributeType()] = attrEntry{attr: attr, value: value}
}

// TextureAttribute returns the attribute stored on texture unit in slot typ, or nil if absent.
func (ss *StateSet) TextureAttribute(unit int, typ AttributeType) (Attribute, ModeValue) {
	if unit < 0 || unit >= len(ss.texAttrs) {
		return nil, Inherit
	}
	e, ok := ss.texAttrs[unit][typ]
	if !ok {
		return nil, Inherit
	}
	return e.attr, e.value
}

func (ss *StateSet) RemoveTextureAttribute(unit int, typ AttributeType) {
	if unit < 0 || unit >= len(ss.texAttrs) {
		return
	}
	delete(ss.texAttrs[unit], typ)
}

// TextureAttributes returns the attributes on texture unit ordered by type.
func (ss *StateSet) TextureAttributes(unit int) []Attribute {
	if unit < 0 || unit >= len(ss.texAttrs) {
		return nil
	}
	return sortedAttributes(ss.texAttrs[unit])
}

// AddUniform adds u with value On. A uniform with the same name is replaced in place.
func (ss *StateSet) AddUniform(u *Uniform) {
	ss.AddUniformValue(u, On)
}

// AddUniformValue adds u with the given override value. A uniform with the same name is replaced in place.
func (ss *StateSet) AddUniformValue(u *Uniform, value ModeValue) {
	idx := ss.uniformIndex(u.Name)
	if idx >= 0 {
		ss.uniforms[idx] = uniformEntry{u: u, value: value}
		return
	}
	ss.uniforms = append(ss.uniforms, uniformEntry{u: u, value: value})
}

// Uniform returns the uniform named name, or nil if absent.
func (ss *StateSet) Uniform(name string) (*Uniform, ModeValue) {
	idx := ss.uniformIndex(name)
	if idx < 0 {
		return nil, Inherit
	}
	return ss.uniforms[idx].u, ss.uniforms[idx].value
}

func (ss *StateSet) RemoveUniform(name string) {
	idx := ss.uniformIndex(name)
	if idx >= 0 {
		ss.uniforms = slices.Delete(ss.uniforms, idx, idx+1)
	}
}

// Uniforms returns the uniforms in insertion order.
func (ss *StateSet) Uniforms() []*Uniform {
	list := make([]*Uniform, len(ss.uniforms))
	for i := range ss.uniforms {
		list[i] = ss.uniforms[i].u
	}
	return list
}

// NumUniforms returns the number of uniforms stored in ss.
func (ss *StateSet) NumUniforms() int { return len(ss.uniforms) }

// SetUniformList replaces all uniforms of ss with list, each with value On.
// The Uniform values are shared, not copied.
func (ss *StateSet) SetUniformList(list []*Uniform) {
	ss.uniforms = ss.uniforms[:0]
	for _, u := range list {
		ss.AddUniform(u)
	}
}

func (ss *StateSet) uniformIndex(name string) int {
	for i := range ss.uniforms {
		if ss.uniforms[i].u.Name == name {
			return i
		}
	}
	return -1
}

func sortedAttributes(m map[AttributeType]attrEntry) []Attribute {
	if len(m) == 0 {
		return nil
	}
	types := make([]AttributeType, 0, len(m))
	for typ := range m {
		types = append(types, typ)
	}
	slices.Sort(types)
	attrs := make([]Attribute, len(types))
	for i, typ := range types {
		attrs[i] = m[typ].attr
	}
	return attrs
}
