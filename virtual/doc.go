// Package virtual normalizes one or more raw trees into a single uniform
// graph view with reroute indirection resolved into direct, semantically
// meaningful edges.
//
// A Graph goes through a strict two-phase lifecycle:
//
//   - Building: nodes and links may be added, from one tree or from several
//     (e.g. nested tree groups merged into one view).
//   - Frozen: FreezeAndIndex computes the derived indices exactly once;
//     afterwards the graph is read-only.
//
// The transition is one-way and irreversible. Mutating a frozen graph, or
// reading frozen-only state from a building graph, is a programmer error
// and panics.
//
// Unlike the index package, a Graph keeps every node as a first-class
// entry, reroutes included: it must merge possibly multiple source trees
// uniformly, so reroute semantics are resolved lazily through the
// link-resolution pass at freeze time rather than by filtering nodes.
//
// # Usage
//
//	g := virtual.NewGraph()
//	g.AddAllOfTree(t)
//	g.FreezeAndIndex()
//
//	for _, in := range g.InputsWithLinks() {
//	    for _, origin := range in.Links() {
//	        fmt.Println(in.Node().Name(), "<-", origin.Node().Name())
//	    }
//	}
//
// All queries on a frozen graph are pure reads and safe for concurrent use.
package virtual
