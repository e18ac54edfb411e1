package vkgraph

import (
	"github.com/soypat/geometry/ms3"
)

// Node is a render graph node.
type Node interface {
	Children() []Node
}

// Group is a node holding children. It is embedded by all inner nodes.
type Group struct {
	children []Node
}

func (g *Group) Children() []Node { return g.children }

func (g *Group) AddChild(n Node) {
	g.children = append(g.children, n)
}

// MatrixTransform applies Matrix to the model transform of its children.
type MatrixTransform struct {
	Group
	Matrix ms3.Mat4
}

// NewMatrixTransform returns an identity transform.
func NewMatrixTransform() *MatrixTransform {
	return &MatrixTransform{Matrix: ms3.IdentityMat4()}
}

// Texture binds Image for the subgraph below it.
type Texture struct {
	Group
	// Binding is the descriptor binding the image sampler is written to.
	Binding uint32
	Image   *Image
}

// Command is a draw command recorded by a [Geometry].
type Command interface {
	isCommand()
}

// DrawIndexed draws IndexCount indices of the bound index buffer.
type DrawIndexed struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	VertexOffset  int32
	FirstInstance uint32
}

func (*DrawIndexed) isCommand() {}

// Geometry is a leaf node with vertex buffers bound in order of Arrays,
// an index buffer and the commands drawing them.
type Geometry struct {
	Arrays   []Data
	Indices  IndexData
	Commands []Command
}

func (*Geometry) Children() []Node { return nil }

// Walk calls fn for n and every descendant in depth first order.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
