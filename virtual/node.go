package virtual

import (
	"github.com/zero-day-ai/nodegraph/tree"
)

// Node wraps one raw node together with a back-reference to its owning
// Graph. Nodes are immutable once created.
type Node struct {
	graph *Graph
	tree  *tree.Tree
	raw   *tree.Node

	inputs  []*Socket
	outputs []*Socket
}

// Graph returns the Graph that owns this node.
func (n *Node) Graph() *Graph {
	return n.graph
}

// Tree returns the raw tree this node was ingested from.
func (n *Node) Tree() *tree.Tree {
	return n.tree
}

// Raw returns the wrapped raw node.
func (n *Node) Raw() *tree.Node {
	return n.raw
}

// Name returns the raw node's display name.
func (n *Node) Name() string {
	return n.raw.Name
}

// IDName returns the raw node's type identifier.
func (n *Node) IDName() string {
	return n.raw.IDName
}

// Inputs returns the node's input sockets in declaration order.
func (n *Node) Inputs() []*Socket {
	return n.inputs
}

// Outputs returns the node's output sockets in declaration order.
func (n *Node) Outputs() []*Socket {
	return n.outputs
}

// Input returns the input socket at the given index.
func (n *Node) Input(i int) *Socket {
	return n.inputs[i]
}

// Output returns the output socket at the given index.
func (n *Node) Output(i int) *Socket {
	return n.outputs[i]
}

// Socket wraps one raw socket. A Socket belongs to exactly one Node for its
// entire lifetime.
type Socket struct {
	node *Node
	raw  *tree.Socket

	directLinks []*Socket
	links       []*Socket
}

// Node returns the Node that owns this socket.
func (s *Socket) Node() *Node {
	return s.node
}

// Raw returns the wrapped raw socket.
func (s *Socket) Raw() *tree.Socket {
	return s.raw
}

// Name returns the raw socket's name.
func (s *Socket) Name() string {
	return s.raw.Name()
}

// IsInput returns true if the socket receives values.
func (s *Socket) IsInput() bool {
	return s.raw.IsInput()
}

// IsOutput returns true if the socket produces values.
func (s *Socket) IsOutput() bool {
	return s.raw.IsOutput()
}

// DirectLinks returns the sockets connected to this one by a single raw
// edge. Panics if the owning graph is not frozen.
func (s *Socket) DirectLinks() []*Socket {
	s.node.graph.mustBeFrozen("DirectLinks")
	return s.directLinks
}

// Links returns the sockets connected to this one once reroute chains are
// resolved. For an input socket these are the real origins feeding it; for
// an output socket, the real destinations it feeds. Panics if the owning
// graph is not frozen.
func (s *Socket) Links() []*Socket {
	s.node.graph.mustBeFrozen("Links")
	return s.links
}

// Link is one directed edge between two sockets of the same Graph. It has
// no state beyond its two endpoints.
type Link struct {
	from *Socket
	to   *Socket
}

// From returns the link's source socket.
func (l *Link) From() *Socket {
	return l.from
}

// To returns the link's destination socket.
func (l *Link) To() *Socket {
	return l.to
}
