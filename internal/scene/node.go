// Package scene models the state the external renderer draws: camera,
// solar system, planet environments. Mesh, material and light setup stay
// in the rendering client; this package only tracks positions, parenting
// and highlight state.
package scene

import "github.com/ayusman/orrery/internal/vmath"

// Node is a minimal scene-graph handle: a named position with a parent
// and children. The renderer mirrors this graph.
type Node struct {
	Name     string
	Position vmath.Vec3

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Parent returns the node's current parent, or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// AttachChild reparents child under n, detaching it from any previous
// parent first.
func (n *Node) AttachChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. A child belonging to another parent
// is left untouched.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}
