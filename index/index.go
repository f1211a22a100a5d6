package index

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/nodegraph/tree"
)

// SocketWithNode pairs a socket with the node that owns it. Resolution
// queries return these so callers do not need a second lookup to reach the
// node behind a resolved socket.
type SocketWithNode struct {
	Socket *tree.Socket
	Node   *tree.Node
}

// SingleOriginLink records a destination socket that is fed by exactly one
// real source after resolving all reroute chains.
type SingleOriginLink struct {
	// From is the resolved origin, always an output on a non-reroute node.
	From *tree.Socket

	// To is the destination input socket.
	To *tree.Socket
}

// Index holds the derived lookup structures for one raw tree. All of them
// are computed in a single construction pass and never mutated afterward,
// so every query is a pure read.
//
// The Index is valid only while the underlying tree is unmodified.
type Index struct {
	tree *tree.Tree

	originalNodes []*tree.Node
	originalLinks []*tree.Link
	actualNodes   []*tree.Node

	nodeBySocket  map[*tree.Socket]*tree.Node
	nodesByIDName map[string][]*tree.Node

	// directLinks maps a socket to its one-hop connections on both sides:
	// an input socket maps to the outputs feeding it, an output socket to
	// the inputs it feeds.
	directLinks map[*tree.Socket][]SocketWithNode

	// links maps a non-reroute socket to its reroute-resolved connections.
	links map[*tree.Socket][]SocketWithNode

	singleOriginLinks []SingleOriginLink
}

// New builds an Index over the given tree in one pass.
func New(t *tree.Tree, opts ...Option) *Index {
	cfg := newConfig(opts...)

	var span trace.Span
	if cfg.tracer != nil {
		_, span = cfg.tracer.Start(context.Background(), "index.build")
		defer span.End()
	}

	idx := &Index{
		tree:          t,
		nodeBySocket:  make(map[*tree.Socket]*tree.Node),
		nodesByIDName: make(map[string][]*tree.Node),
		directLinks:   make(map[*tree.Socket][]SocketWithNode),
		links:         make(map[*tree.Socket][]SocketWithNode),
	}

	idx.indexNodes(t)
	idx.indexLinks(t)
	idx.resolveLinks()
	idx.collectSingleOriginLinks()

	if span != nil {
		span.SetAttributes(
			attribute.String("tree.id", t.ID),
			attribute.Int("tree.nodes", len(idx.originalNodes)),
			attribute.Int("tree.links", len(idx.originalLinks)),
			attribute.Int("tree.actual_nodes", len(idx.actualNodes)),
		)
	}
	cfg.logger.Debug("built tree index",
		"tree", t.Name,
		"nodes", len(idx.originalNodes),
		"links", len(idx.originalLinks),
		"single_origin_links", len(idx.singleOriginLinks))

	buildCount.Add(context.Background(), 1)
	nodeCount.Add(context.Background(), int64(len(idx.originalNodes)),
		metric.WithAttributes(attribute.String("tree.id", t.ID)))

	return idx
}

// indexNodes records node order, the socket reverse map, the idname
// multimap, and the actual-node subset.
func (idx *Index) indexNodes(t *tree.Tree) {
	for _, n := range t.Nodes() {
		idx.originalNodes = append(idx.originalNodes, n)
		idx.nodesByIDName[n.IDName] = append(idx.nodesByIDName[n.IDName], n)

		for _, s := range n.Inputs() {
			idx.nodeBySocket[s] = n
		}
		for _, s := range n.Outputs() {
			idx.nodeBySocket[s] = n
		}

		if !tree.IsReroute(n) && !tree.IsFrame(n) {
			idx.actualNodes = append(idx.actualNodes, n)
		}
	}
}

// indexLinks records link order and the one-hop adjacency on both sides of
// every link.
func (idx *Index) indexLinks(t *tree.Tree) {
	for _, l := range t.Links() {
		idx.originalLinks = append(idx.originalLinks, l)

		from, to := l.From(), l.To()
		idx.directLinks[to] = append(idx.directLinks[to], SocketWithNode{
			Socket: from,
			Node:   idx.nodeBySocket[from],
		})
		idx.directLinks[from] = append(idx.directLinks[from], SocketWithNode{
			Socket: to,
			Node:   idx.nodeBySocket[to],
		})
	}
}

// resolveLinks computes the reroute-resolved connection set for every
// linked socket that is not itself on a reroute node.
func (idx *Index) resolveLinks() {
	for s := range idx.directLinks {
		if tree.IsReroute(idx.nodeBySocket[s]) {
			continue
		}
		idx.links[s] = idx.resolve(s)
	}
}

// resolve walks the one-hop adjacency starting at s, skipping transparently
// through reroute nodes, and returns the non-reroute sockets reached. The
// visited set makes malformed reroute cycles terminate instead of
// recursing forever.
func (idx *Index) resolve(s *tree.Socket) []SocketWithNode {
	var connected []SocketWithNode
	visited := map[*tree.Socket]bool{s: true}
	idx.walkConnected(s, visited, &connected)
	return connected
}

func (idx *Index) walkConnected(s *tree.Socket, visited map[*tree.Socket]bool, connected *[]SocketWithNode) {
	for _, c := range idx.directLinks[s] {
		if visited[c.Socket] {
			continue
		}
		visited[c.Socket] = true

		if !tree.IsReroute(c.Node) {
			*connected = append(*connected, c)
			continue
		}

		// Hop to the opposite side of the reroute and keep walking in the
		// same direction.
		hops := c.Node.Inputs()
		if c.Socket.IsInput() {
			hops = c.Node.Outputs()
		}
		for _, hop := range hops {
			if visited[hop] {
				continue
			}
			visited[hop] = true
			idx.walkConnected(hop, visited, connected)
		}
	}
}

// collectSingleOriginLinks retains every destination whose resolved set is
// a singleton.
func (idx *Index) collectSingleOriginLinks() {
	for _, n := range idx.originalNodes {
		if tree.IsReroute(n) {
			continue
		}
		for _, s := range n.Inputs() {
			resolved := idx.links[s]
			if len(resolved) == 1 {
				idx.singleOriginLinks = append(idx.singleOriginLinks, SingleOriginLink{
					From: resolved[0].Socket,
					To:   s,
				})
			}
		}
	}
}

// Tree returns the tree this index was built over.
func (idx *Index) Tree() *tree.Tree {
	return idx.tree
}

// OriginalNodes returns every node of the tree in original order, with no
// filtering.
func (idx *Index) OriginalNodes() []*tree.Node {
	return idx.originalNodes
}

// OriginalLinks returns every link of the tree in original order, with no
// filtering.
func (idx *Index) OriginalLinks() []*tree.Link {
	return idx.originalLinks
}

// ActualNodes returns the nodes that are not classified as reroutes or
// frames.
func (idx *Index) ActualNodes() []*tree.Node {
	return idx.actualNodes
}

// NodeOfSocket returns the node that declared the given socket. Returns nil
// if the socket is not part of the indexed tree.
func (idx *Index) NodeOfSocket(s *tree.Socket) *tree.Node {
	return idx.nodeBySocket[s]
}

// NodesWithIDName returns all nodes with the given type identifier, in
// original node order. Returns an empty slice if none match.
func (idx *Index) NodesWithIDName(idname string) []*tree.Node {
	return idx.nodesByIDName[idname]
}

// Linked returns the sockets connected to s once reroute chains are
// resolved, paired with their owning nodes. For an input socket these are
// the real origins feeding it; for an output socket, the real destinations
// it feeds. Returns an empty slice for unlinked sockets and for sockets on
// reroute nodes.
func (idx *Index) Linked(s *tree.Socket) []SocketWithNode {
	return idx.links[s]
}

// SingleOriginLinks returns the precomputed (destination, resolved source)
// pairs for every destination whose resolved origin set has exactly one
// element. Destinations fed by multiple real sources are excluded; use
// Linked for full multi-source visibility.
func (idx *Index) SingleOriginLinks() []SingleOriginLink {
	return idx.singleOriginLinks
}
