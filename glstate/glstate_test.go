package glstate_test

import (
	"testing"

	"github.com/soypat/scenegl"
	"github.com/soypat/scenegl/glstate"
)

func modeSet(mode scenegl.Mode, v scenegl.ModeValue) *scenegl.StateSet {
	ss := scenegl.NewStateSet()
	ss.SetMode(mode, v)
	return ss
}

func TestModeComposition(t *testing.T) {
	const (
		on  = scenegl.On
		off = scenegl.Off
		ovr = scenegl.Override
		pro = scenegl.Protected
		inh = scenegl.Inherit
	)
	var tests = []struct {
		desc  string
		stack []scenegl.ModeValue // bottom first
		want  scenegl.ModeValue
	}{
		{desc: "empty", stack: nil, want: off},
		{desc: "single on", stack: []scenegl.ModeValue{on}, want: on},
		{desc: "top wins", stack: []scenegl.ModeValue{on, off}, want: off},
		{desc: "inherit defers", stack: []scenegl.ModeValue{on, inh}, want: on},
		{desc: "override beats child", stack: []scenegl.ModeValue{on | ovr, off}, want: on | ovr},
		{desc: "protected beats override", stack: []scenegl.ModeValue{on | ovr, off | pro}, want: off | pro},
		{desc: "override replaced by overriding child only if protected", stack: []scenegl.ModeValue{off | ovr, on | ovr}, want: off | ovr},
		{desc: "later override applies below", stack: []scenegl.ModeValue{on, off | ovr, on}, want: off | ovr},
	}
	for _, test := range tests {
		var s glstate.State
		for _, v := range test.stack {
			s.Push(modeSet(scenegl.ModeLighting, v))
		}
		got := s.Mode(scenegl.ModeLighting, off)
		if got != test.want {
			t.Errorf("%s: want %b, got %b", test.desc, test.want, got)
		}
	}
}

func TestModeDefault(t *testing.T) {
	var s glstate.State
	s.Push(modeSet(scenegl.ModeBlend, scenegl.On))
	if got := s.Mode(scenegl.ModeLighting, scenegl.Inherit); got != scenegl.Inherit {
		t.Errorf("want default, got %b", got)
	}
}

func TestAttributeOverride(t *testing.T) {
	parentMat := &scenegl.Material{Shininess: 1}
	childMat := &scenegl.Material{Shininess: 2}
	parent := scenegl.NewStateSet()
	child := scenegl.NewStateSet()
	parent.SetAttribute(parentMat)
	child.SetAttribute(childMat)

	var s glstate.State
	s.Push(parent)
	s.Push(child)
	if got := s.Attribute(scenegl.AttrMaterial); got != childMat {
		t.Error("child material should win without override")
	}
	parent.SetAttributeValue(parentMat, scenegl.On|scenegl.Override)
	if got := s.Attribute(scenegl.AttrMaterial); got != parentMat {
		t.Error("parent override should win")
	}
	child.SetAttributeValue(childMat, scenegl.On|scenegl.Protected)
	if got := s.Attribute(scenegl.AttrMaterial); got != childMat {
		t.Error("protected child should win over override")
	}
	if got := s.Attribute(scenegl.AttrProgram); got != nil {
		t.Error("want nil for unset attribute")
	}
}

func TestTextureQueries(t *testing.T) {
	tex0 := &scenegl.Texture2D{}
	tex1 := &scenegl.Texture2D{}
	bottom := scenegl.NewStateSet()
	bottom.SetTextureAttribute(0, tex0)
	bottom.SetTextureMode(0, scenegl.ModeTexture2D, scenegl.On)
	top := scenegl.NewStateSet()
	top.SetTextureAttribute(1, tex1)

	var s glstate.State
	s.Push(bottom)
	s.Push(top)
	if s.TextureAttribute(0, scenegl.AttrTexture) != tex0 {
		t.Error("unit 0 texture should be inherited from bottom")
	}
	if s.TextureAttribute(1, scenegl.AttrTexture) != tex1 {
		t.Error("unit 1 texture missing")
	}
	if s.TextureAttribute(2, scenegl.AttrTexture) != nil {
		t.Error("unit 2 should be empty")
	}
	if !s.TextureMode(0, scenegl.ModeTexture2D, scenegl.Off).IsOn() {
		t.Error("unit 0 texture mode should be on")
	}
	if s.TextureMode(1, scenegl.ModeTexture2D, scenegl.Off).IsOn() {
		t.Error("unit 1 texture mode should default off")
	}
}

func TestUniform(t *testing.T) {
	a := scenegl.NewStateSet()
	b := scenegl.NewStateSet()
	ua := scenegl.NewFloatUniform("x", 1)
	ub := scenegl.NewFloatUniform("x", 2)
	a.AddUniform(ua)
	b.AddUniform(ub)
	var s glstate.State
	s.Push(a)
	s.Push(b)
	if s.Uniform("x") != ub {
		t.Error("top uniform should win")
	}
	s.Pop()
	if s.Uniform("x") != ua {
		t.Error("bottom uniform should remain after pop")
	}
	if s.Uniform("y") != nil {
		t.Error("want nil for missing uniform")
	}
}

func TestStackDiscipline(t *testing.T) {
	var s glstate.State
	if s.Pop() {
		t.Error("pop on empty stack should report false")
	}
	if s.Top() != nil {
		t.Error("want nil top on empty stack")
	}
	root := modeSet(scenegl.ModeLighting, scenegl.On)
	s.Push(root)
	var nest func(depth int)
	nest = func(depth int) {
		if depth == 0 {
			return
		}
		before := s.Depth()
		for i := 0; i < depth; i++ {
			s.Push(modeSet(scenegl.ModeLighting, scenegl.ModeValue(i%2)))
			nest(depth - 1)
			s.Pop()
		}
		if s.Depth() != before {
			t.Fatalf("depth %d: unbalanced stack %d != %d", depth, s.Depth(), before)
		}
	}
	nest(4)
	if s.Depth() != 1 || s.Top() != root {
		t.Fatal("root lost after nested traversal")
	}
	// Result is a pure function of the stack: pushing and popping leaves queries unchanged.
	want := s.Mode(scenegl.ModeLighting, scenegl.Off)
	s.Push(modeSet(scenegl.ModeLighting, scenegl.Off|scenegl.Override))
	s.Pop()
	if got := s.Mode(scenegl.ModeLighting, scenegl.Off); got != want {
		t.Errorf("query depends on history: %b != %b", got, want)
	}

	s.Push(nil)
	if s.Depth() != 2 || s.Mode(scenegl.ModeLighting, scenegl.Off) != want {
		t.Error("nil state set should count toward depth without effect")
	}
	if !s.Remove(0) || s.Depth() != 1 || s.Top() != nil {
		t.Error("remove bottom failed")
	}
	if s.Remove(3) {
		t.Error("out of range remove should fail")
	}
	s.PopAll()
	if s.Depth() != 0 {
		t.Error("PopAll did not empty stack")
	}
}
