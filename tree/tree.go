package tree

import (
	"fmt"

	"github.com/google/uuid"
)

// Direction identifies which side of a node a socket sits on.
type Direction string

const (
	// In marks a socket that receives values.
	In Direction = "in"

	// Out marks a socket that produces values.
	Out Direction = "out"
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// IsValid returns true if the direction is one of the defined constants.
func (d Direction) IsValid() bool {
	return d == In || d == Out
}

// Tree is a raw node graph: an ordered list of nodes and an ordered list of
// links between their sockets. A Tree owns its nodes, sockets, and links;
// the index and virtual packages only ever borrow them.
type Tree struct {
	// ID is the unique tree identifier. Auto-generated if not provided.
	ID string

	// Name is the human-readable tree name.
	Name string

	nodes []*Node
	links []*Link
}

// New creates an empty Tree with the given name and a generated ID.
func New(name string) *Tree {
	return &Tree{
		ID:   uuid.New().String(),
		Name: name,
	}
}

// Nodes returns every node in the tree, in insertion order.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Links returns every link in the tree, in insertion order.
func (t *Tree) Links() []*Link {
	return t.links
}

// AddNode creates a node with the given type identifier and display name,
// appends it to the tree, and returns it for socket registration.
func (t *Tree) AddNode(idname, name string) *Node {
	n := &Node{
		IDName: idname,
		Name:   name,
		tree:   t,
	}
	t.nodes = append(t.nodes, n)
	return n
}

// Connect creates a link from an output socket to an input socket and
// appends it to the tree. It returns ErrSocketDirection if from is not an
// output or to is not an input.
func (t *Tree) Connect(from, to *Socket) (*Link, error) {
	if !from.IsOutput() {
		return nil, fmt.Errorf("link source %q on node %q: %w", from.Name(), from.Node().Name, ErrSocketDirection)
	}
	if !to.IsInput() {
		return nil, fmt.Errorf("link destination %q on node %q: %w", to.Name(), to.Node().Name, ErrSocketDirection)
	}
	l := &Link{from: from, to: to}
	t.links = append(t.links, l)
	return l, nil
}

// Node is a single node in a raw tree. Its identity is its pointer; two
// nodes with the same idname and name are still distinct nodes.
type Node struct {
	// IDName is the node type identifier (e.g. "ShaderNodeBsdfPrincipled").
	IDName string

	// Name is the display name, unique within a tree by convention but not
	// enforced here.
	Name string

	tree    *Tree
	inputs  []*Socket
	outputs []*Socket
}

// Tree returns the tree that owns this node.
func (n *Node) Tree() *Tree {
	return n.tree
}

// Inputs returns the node's input sockets in declaration order.
func (n *Node) Inputs() []*Socket {
	return n.inputs
}

// Outputs returns the node's output sockets in declaration order.
func (n *Node) Outputs() []*Socket {
	return n.outputs
}

// AddInput declares a new input socket on the node and returns it.
func (n *Node) AddInput(name string) *Socket {
	s := &Socket{name: name, direction: In, node: n}
	n.inputs = append(n.inputs, s)
	return s
}

// AddOutput declares a new output socket on the node and returns it.
func (n *Node) AddOutput(name string) *Socket {
	s := &Socket{name: name, direction: Out, node: n}
	n.outputs = append(n.outputs, s)
	return s
}

// Input returns the input socket at the given index.
func (n *Node) Input(i int) *Socket {
	return n.inputs[i]
}

// Output returns the output socket at the given index.
func (n *Node) Output(i int) *Socket {
	return n.outputs[i]
}

// Socket is one typed connection point on a node. A socket belongs to
// exactly one node for its entire lifetime.
type Socket struct {
	name      string
	direction Direction
	node      *Node
}

// Name returns the socket name.
func (s *Socket) Name() string {
	return s.name
}

// Direction returns which side of the node the socket sits on.
func (s *Socket) Direction() Direction {
	return s.direction
}

// Node returns the node that declared this socket.
func (s *Socket) Node() *Node {
	return s.node
}

// IsInput returns true if the socket receives values.
func (s *Socket) IsInput() bool {
	return s.direction == In
}

// IsOutput returns true if the socket produces values.
func (s *Socket) IsOutput() bool {
	return s.direction == Out
}

// Link is one directed raw edge from an output socket to an input socket.
type Link struct {
	from *Socket
	to   *Socket
}

// From returns the link's source, always an output socket.
func (l *Link) From() *Socket {
	return l.from
}

// To returns the link's destination, always an input socket.
func (l *Link) To() *Socket {
	return l.to
}
