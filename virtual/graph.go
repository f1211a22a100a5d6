package virtual

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/nodegraph/tree"
)

// Graph aggregates nodes and links ingested from one or more raw trees into
// a unified view. See the package documentation for the Building -> Frozen
// lifecycle.
//
// A Graph owns every Node, Socket, and Link it creates; releasing the Graph
// releases all of them. It never owns or mutates the underlying raw trees,
// which must stay alive and unmodified for the Graph's lifetime.
type Graph struct {
	id     string
	frozen bool
	cfg    *config

	nodes           []*Node
	links           []*Link
	inputsWithLinks []*Socket
	nodesByIDName   map[string][]*Node

	socketByRaw map[*tree.Socket]*Socket
}

// NewGraph creates an empty Graph in the Building state.
func NewGraph(opts ...Option) *Graph {
	return &Graph{
		id:            uuid.New().String(),
		cfg:           newConfig(opts...),
		nodesByIDName: make(map[string][]*Node),
		socketByRaw:   make(map[*tree.Socket]*Socket),
	}
}

// ID returns the unique graph identifier.
func (g *Graph) ID() string {
	return g.id
}

// Frozen reports whether FreezeAndIndex has been called.
func (g *Graph) Frozen() bool {
	return g.frozen
}

// AddAllOfTree ingests every node and link of a raw tree. Each raw node
// becomes one Node, reroutes included. Panics if the graph is frozen.
//
// A raw node must be added at most once per Graph.
func (g *Graph) AddAllOfTree(t *tree.Tree) {
	g.mustBeBuilding("AddAllOfTree")

	for _, n := range t.Nodes() {
		g.AddNode(t, n)
	}
	for _, l := range t.Links() {
		g.AddLink(g.socketByRaw[l.From()], g.socketByRaw[l.To()])
	}
}

// AddNode creates and registers one Node wrapping the given raw node,
// together with one Socket per raw input and output socket. Panics if the
// graph is frozen.
func (g *Graph) AddNode(t *tree.Tree, n *tree.Node) *Node {
	g.mustBeBuilding("AddNode")

	vn := &Node{
		graph: g,
		tree:  t,
		raw:   n,
	}

	// One allocation backs all sockets of the node; the input and output
	// arrays are views into it.
	in, out := n.Inputs(), n.Outputs()
	sockets := make([]Socket, len(in)+len(out))
	vn.inputs = make([]*Socket, len(in))
	vn.outputs = make([]*Socket, len(out))
	for i, s := range in {
		vs := &sockets[i]
		vs.node = vn
		vs.raw = s
		vn.inputs[i] = vs
		g.socketByRaw[s] = vs
	}
	for i, s := range out {
		vs := &sockets[len(in)+i]
		vs.node = vn
		vs.raw = s
		vn.outputs[i] = vs
		g.socketByRaw[s] = vs
	}

	g.nodes = append(g.nodes, vn)
	return vn
}

// AddLink registers a Link between two already-added sockets. The source
// must be an output socket and the destination an input socket. Panics if
// either endpoint is unknown to this graph or if the graph is frozen.
func (g *Graph) AddLink(from, to *Socket) *Link {
	g.mustBeBuilding("AddLink")

	if from == nil || to == nil {
		panic("virtual: AddLink endpoint is nil")
	}
	if from.node.graph != g {
		panic(fmt.Sprintf("virtual: AddLink source %q does not belong to this graph", from.Name()))
	}
	if to.node.graph != g {
		panic(fmt.Sprintf("virtual: AddLink destination %q does not belong to this graph", to.Name()))
	}
	if !from.IsOutput() {
		panic(fmt.Sprintf("virtual: AddLink source %q is not an output socket", from.Name()))
	}
	if !to.IsInput() {
		panic(fmt.Sprintf("virtual: AddLink destination %q is not an input socket", to.Name()))
	}

	l := &Link{from: from, to: to}
	g.links = append(g.links, l)
	return l
}

// FreezeAndIndex transitions the graph from Building to Frozen and computes
// the derived indices:
//
//  1. every Link is recorded as a one-hop connection on both endpoints
//  2. every socket gets its reroute-resolved connection set; input sockets
//     with at least one resolved connection form InputsWithLinks
//  3. nodes are grouped by type identifier for NodesWithIDName
//
// The transition is one-way. Panics if the graph is already frozen.
func (g *Graph) FreezeAndIndex() {
	if g.frozen {
		panic("virtual: FreezeAndIndex called on frozen graph")
	}

	var span trace.Span
	if g.cfg.tracer != nil {
		_, span = g.cfg.tracer.Start(context.Background(), "virtual.freeze")
		defer span.End()
	}

	g.frozen = true
	g.initializeDirectLinks()
	g.initializeLinks()
	g.initializeNodesByIDName()

	if span != nil {
		span.SetAttributes(
			attribute.String("graph.id", g.id),
			attribute.Int("graph.nodes", len(g.nodes)),
			attribute.Int("graph.links", len(g.links)),
			attribute.Int("graph.inputs_with_links", len(g.inputsWithLinks)),
		)
	}
	g.cfg.logger.Debug("froze virtual graph",
		"graph", g.id,
		"nodes", len(g.nodes),
		"links", len(g.links),
		"inputs_with_links", len(g.inputsWithLinks))

	freezeCount.Add(context.Background(), 1)
	frozenNodeCount.Add(context.Background(), int64(len(g.nodes)))
}

func (g *Graph) initializeDirectLinks() {
	for _, l := range g.links {
		l.to.directLinks = append(l.to.directLinks, l.from)
		l.from.directLinks = append(l.from.directLinks, l.to)
	}
}

func (g *Graph) initializeLinks() {
	for _, n := range g.nodes {
		for _, s := range n.inputs {
			s.links = g.resolveConnected(s)
			if len(s.links) > 0 {
				g.inputsWithLinks = append(g.inputsWithLinks, s)
			}
		}
		for _, s := range n.outputs {
			s.links = g.resolveConnected(s)
		}
	}
}

func (g *Graph) initializeNodesByIDName() {
	for _, n := range g.nodes {
		g.nodesByIDName[n.raw.IDName] = append(g.nodesByIDName[n.raw.IDName], n)
	}
}

// resolveConnected walks the one-hop connections of s, skipping through
// reroute nodes, and returns the non-reroute sockets reached. The visited
// set makes malformed reroute cycles terminate.
func (g *Graph) resolveConnected(s *Socket) []*Socket {
	var connected []*Socket
	visited := map[*Socket]bool{s: true}
	g.walkConnected(s, visited, &connected)
	return connected
}

func (g *Graph) walkConnected(s *Socket, visited map[*Socket]bool, connected *[]*Socket) {
	for _, c := range s.directLinks {
		if visited[c] {
			continue
		}
		visited[c] = true

		if !tree.IsReroute(c.node.raw) {
			*connected = append(*connected, c)
			continue
		}

		hops := c.node.inputs
		if c.IsInput() {
			hops = c.node.outputs
		}
		for _, hop := range hops {
			if visited[hop] {
				continue
			}
			visited[hop] = true
			g.walkConnected(hop, visited, connected)
		}
	}
}

// Nodes returns every Node in insertion order. Valid in both lifecycle
// states.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Links returns every Link in insertion order. Valid in both lifecycle
// states.
func (g *Graph) Links() []*Link {
	return g.links
}

// InputsWithLinks returns every input socket whose resolved connection set
// is non-empty, in node order. Panics if the graph is not frozen.
func (g *Graph) InputsWithLinks() []*Socket {
	g.mustBeFrozen("InputsWithLinks")
	return g.inputsWithLinks
}

// NodesWithIDName returns all nodes with the given type identifier, in
// insertion order. Returns an empty slice if none match. Panics if the
// graph is not frozen.
func (g *Graph) NodesWithIDName(idname string) []*Node {
	g.mustBeFrozen("NodesWithIDName")
	return g.nodesByIDName[idname]
}

func (g *Graph) mustBeBuilding(op string) {
	if g.frozen {
		panic(fmt.Sprintf("virtual: %s called on frozen graph", op))
	}
}

func (g *Graph) mustBeFrozen(op string) {
	if !g.frozen {
		panic(fmt.Sprintf("virtual: %s called before FreezeAndIndex", op))
	}
}
