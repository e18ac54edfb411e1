package scenegl_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/scenegl"
)

func TestModeValueBits(t *testing.T) {
	if scenegl.Off != 0 || scenegl.On != 1 || scenegl.Override != 2 || scenegl.Protected != 4 || scenegl.Inherit != 8 {
		t.Fatal("mode value bits changed")
	}
	v := scenegl.On | scenegl.Override
	if !v.IsOn() || !v.IsOverride() || v.IsProtected() || v.IsInherit() {
		t.Errorf("bad flag decoding of %b", v)
	}
}

func TestStateSetUniforms(t *testing.T) {
	ss := scenegl.NewStateSet()
	ss.AddUniform(scenegl.NewIntUniform("a", 1))
	ss.AddUniform(scenegl.NewFloatUniform("b", 2))
	ss.AddUniform(scenegl.NewIntUniform("c", 3))
	// Replacing keeps position.
	ss.AddUniform(scenegl.NewFloatUniform("b", 20))
	list := ss.Uniforms()
	if len(list) != 3 {
		t.Fatalf("want 3 uniforms, got %d", len(list))
	}
	wantOrder := []string{"a", "b", "c"}
	for i, u := range list {
		if u.Name != wantOrder[i] {
			t.Errorf("uniform %d: want %q, got %q", i, wantOrder[i], u.Name)
		}
	}
	b, value := ss.Uniform("b")
	if b == nil || b.Float() != 20 || value != scenegl.On {
		t.Errorf("unexpected uniform b: %v %v", b, value)
	}
	ss.RemoveUniform("a")
	if u, _ := ss.Uniform("a"); u != nil {
		t.Error("uniform a not removed")
	}
	shared := scenegl.NewIntUniform("shared", 7)
	ss.SetUniformList([]*scenegl.Uniform{shared})
	if ss.NumUniforms() != 1 {
		t.Fatalf("want 1 uniform after SetUniformList, got %d", ss.NumUniforms())
	}
	if u, _ := ss.Uniform("shared"); u != shared {
		t.Error("SetUniformList should share uniform values")
	}
}

func TestStateSetTextureUnits(t *testing.T) {
	ss := scenegl.NewStateSet()
	tex := &scenegl.Texture2D{Image: &scenegl.Image{FileName: "a.png"}}
	ss.SetTextureAttribute(1, tex)
	ss.SetTextureMode(1, scenegl.ModeTexture2D, scenegl.On)
	if ss.NumTextureUnits() != 2 {
		t.Errorf("want 2 texture units, got %d", ss.NumTextureUnits())
	}
	if attr, _ := ss.TextureAttribute(0, scenegl.AttrTexture); attr != nil {
		t.Error("unexpected texture on unit 0")
	}
	if attr, _ := ss.TextureAttribute(1, scenegl.AttrTexture); attr != tex {
		t.Error("missing texture on unit 1")
	}
	if attr, _ := ss.TextureAttribute(-1, scenegl.AttrTexture); attr != nil {
		t.Error("negative unit should return nil")
	}
	if _, ok := ss.TextureMode(1, scenegl.ModeTexture2D); !ok {
		t.Error("missing texture mode")
	}
	ss.RemoveTextureMode(1, scenegl.ModeTexture2D)
	if _, ok := ss.TextureMode(1, scenegl.ModeTexture2D); ok {
		t.Error("texture mode not removed")
	}
	// Out of range removals are no-ops.
	ss.RemoveTextureMode(5, scenegl.ModeTexture2D)
	ss.RemoveTextureAttribute(5, scenegl.AttrTexture)
	if attrs := ss.TextureAttributes(1); len(attrs) != 1 || attrs[0] != tex {
		t.Errorf("unexpected texture attributes %v", attrs)
	}
}

func TestStateSetAttributes(t *testing.T) {
	ss := scenegl.NewStateSet()
	mat := &scenegl.Material{Shininess: 3}
	prog := scenegl.NewProgram("p")
	ss.SetAttribute(prog)
	ss.SetAttributeValue(mat, scenegl.On|scenegl.Override)
	attrs := ss.Attributes()
	if len(attrs) != 2 || attrs[0] != mat || attrs[1] != prog {
		t.Fatalf("attributes not ordered by type: %v", attrs)
	}
	got, value := ss.Attribute(scenegl.AttrMaterial)
	if got != mat || !value.IsOverride() {
		t.Error("material lookup failed")
	}
	ss.RemoveAttribute(scenegl.AttrMaterial)
	if got, value := ss.Attribute(scenegl.AttrMaterial); got != nil || value != scenegl.Inherit {
		t.Error("material not removed")
	}
}

func TestUniformString(t *testing.T) {
	var tests = []struct {
		u    *scenegl.Uniform
		want string
	}{
		{scenegl.NewIntUniform("diffuseMap", 0), "int diffuseMap = 0"},
		{scenegl.NewFloatUniform("shine", 16), "float shine = 16"},
		{scenegl.NewVec3Uniform("dir", ms3.Vec{X: 1, Y: 0.5}), "vec3 dir = vec3(1,0.5,0)"},
		{scenegl.NewVec4Uniform("col", scenegl.Vec4{X: 0.2, Y: 0.2, Z: 0.2, W: 1}), "vec4 col = vec4(0.2,0.2,0.2,1)"},
	}
	for _, test := range tests {
		if got := test.u.String(); got != test.want {
			t.Errorf("want %q, got %q", test.want, got)
		}
	}
}

func TestProgramShaders(t *testing.T) {
	prog := scenegl.NewProgram("x")
	prog.BindAttribLocation("tangent", 6)
	if loc, ok := prog.AttribLocation("tangent"); !ok || loc != 6 {
		t.Error("tangent binding missing")
	}
	bindings := prog.AttribBindings()
	bindings["tangent"] = 1
	if loc, _ := prog.AttribLocation("tangent"); loc != 6 {
		t.Error("AttribBindings exposes internal map")
	}
}

func TestGeometryFirstDrawElements(t *testing.T) {
	var g scenegl.Geometry
	if de, _ := g.FirstDrawElements(); de != nil {
		t.Fatal("want nil draw elements on empty geometry")
	}
	first := &scenegl.DrawElements{Mode: scenegl.Triangles, Indices: []uint32{0, 1, 2}}
	g.AddPrimitiveSet(&scenegl.DrawArrays{Mode: scenegl.Points, Count: 3})
	g.AddPrimitiveSet(first)
	g.AddPrimitiveSet(&scenegl.DrawElements{Mode: scenegl.Lines, Indices: []uint32{0, 1}})
	de, remaining := g.FirstDrawElements()
	if de != first || remaining != 1 {
		t.Errorf("got %v remaining %d", de, remaining)
	}
	g.SetVertexAttribArray(6, scenegl.Vec3Array{{X: 1}})
	if g.VertexAttribArray(6) == nil || g.VertexAttribArray(5) != nil || g.VertexAttribArray(7) != nil {
		t.Error("vertex attribute locations not respected")
	}
}

func TestWalk(t *testing.T) {
	leaf := scenegl.NewGeode()
	skipped := scenegl.NewGeode()
	pruned := scenegl.NewGroup(skipped)
	pruned.Name = "pruned"
	root := scenegl.NewGroup(scenegl.NewTransform(ms3.Mat4{}, leaf), pruned, scenegl.NewLightSource(nil))
	var visited []*scenegl.Node
	scenegl.Walk(root, func(n *scenegl.Node) bool {
		visited = append(visited, n)
		return n.Name != "pruned"
	})
	if len(visited) != 5 {
		t.Fatalf("want 5 visited nodes, got %d", len(visited))
	}
	for _, n := range visited {
		if n == skipped {
			t.Error("visited child of pruned node")
		}
	}
	if visited[4].Kind() != scenegl.KindLightSource || visited[4].Light() == nil {
		t.Error("light source should carry default light")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	scenegl.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	scenegl.Logger().Info("hello")
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Error("logger did not receive record")
	}
	scenegl.SetLogger(nil)
	buf.Reset()
	scenegl.Logger().Error("silent")
	if buf.Len() != 0 {
		t.Error("nil logger should silence output")
	}
	if scenegl.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger should report disabled")
	}
}
