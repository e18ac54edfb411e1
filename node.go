package scenegl

import (
	"github.com/soypat/geometry/ms3"
)

// NodeKind is the variant of a [Node].
type NodeKind uint8

const (
	KindGroup NodeKind = iota
	KindTransform
	KindLightSource
	KindGeode
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindTransform:
		return "Transform"
	case KindLightSource:
		return "LightSource"
	case KindGeode:
		return "Geode"
	}
	return "NodeKind(?)"
}

// Light is a single fixed-function light. A Position with W=0 is a directional light.
type Light struct {
	Position  Vec4
	Direction ms3.Vec
	Ambient   Vec4
	Diffuse   Vec4
	Specular  Vec4
}

// DefaultLight returns a light shining down the negative Z axis from infinity
// with the fixed-function default colors.
func DefaultLight() *Light {
	return &Light{
		Position:  Vec4{Z: 1},
		Direction: ms3.Vec{Z: -1},
		Ambient:   Vec4{W: 1},
		Diffuse:   Vec4{X: 1, Y: 1, Z: 1, W: 1},
		Specular:  Vec4{X: 1, Y: 1, Z: 1, W: 1},
	}
}

// Node is a scene graph node. Node is a closed set of variants selected by
// [Node.Kind]; variant specific data is reached through accessors that return
// the zero value for other kinds.
type Node struct {
	Name      string
	kind      NodeKind
	stateSet  *StateSet
	children  []*Node
	matrix    ms3.Mat4
	light     *Light
	drawables []*Geometry
}

// NewGroup returns a group node with the given children.
func NewGroup(children ...*Node) *Node {
	return &Node{kind: KindGroup, children: children}
}

// NewTransform returns a transform node applying m to its children.
func NewTransform(m ms3.Mat4, children ...*Node) *Node {
	return &Node{kind: KindTransform, matrix: m, children: children}
}

// NewLightSource returns a light source node. A nil light is replaced by [DefaultLight].
func NewLightSource(light *Light, children ...*Node) *Node {
	if light == nil {
		light = DefaultLight()
	}
	return &Node{kind: KindLightSource, light: light, children: children}
}

// NewGeode returns a leaf node holding drawables.
func NewGeode(drawables ...*Geometry) *Node {
	return &Node{kind: KindGeode, drawables: drawables}
}

func (n *Node) Kind() NodeKind { return n.kind }

// StateSet returns the node's own state set, or nil if it has none.
func (n *Node) StateSet() *StateSet { return n.stateSet }

func (n *Node) SetStateSet(ss *StateSet) { n.stateSet = ss }

// GetOrCreateStateSet returns the node's own state set, creating an empty one if absent.
func (n *Node) GetOrCreateStateSet() *StateSet {
	if n.stateSet == nil {
		n.stateSet = NewStateSet()
	}
	return n.stateSet
}

// Children returns the node's children. Geodes may also have children; they are visited after the drawables.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// Matrix returns the transform of a KindTransform node.
func (n *Node) Matrix() ms3.Mat4 { return n.matrix }

// Light returns the light of a KindLightSource node, or nil.
func (n *Node) Light() *Light { return n.light }

// Drawables returns the geometries of a KindGeode node.
func (n *Node) Drawables() []*Geometry { return n.drawables }

// AddDrawable appends g to the node's drawables. Only geodes draw their drawables.
func (n *Node) AddDrawable(g *Geometry) {
	n.drawables = append(n.drawables, g)
}

// Walk calls fn for n and every descendant in depth first order.
// Children of a node are skipped when fn returns false.
func Walk(n *Node, fn func(n *Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.children {
		Walk(child, fn)
	}
}
