// Package index builds reverse and multi-valued lookup structures over a
// single raw tree.
//
// A raw tree only supports list iteration natively, which makes structural
// queries expensive when repeated:
//   - Which node owns this socket?
//   - Which nodes have a specific type identifier?
//   - Which real nodes feed this input once reroutes are resolved?
//
// Index answers these in constant or output-bounded time by preprocessing
// the tree once at construction. It is only valid as long as the underlying
// tree is not modified; that precondition is not enforced.
//
// # Usage
//
//	idx := index.New(t)
//
//	// All nodes that are not reroutes or frames.
//	for _, n := range idx.ActualNodes() {
//	    fmt.Println(n.Name)
//	}
//
//	// Real sources feeding an input, with reroute chains resolved.
//	for _, origin := range idx.Linked(sock) {
//	    fmt.Println(origin.Node.Name, origin.Socket.Name())
//	}
//
//	// Fast path for unambiguously wired destinations.
//	for _, sol := range idx.SingleOriginLinks() {
//	    fmt.Println(sol.To.Node().Name, "<-", sol.From.Node().Name)
//	}
//
// Every query is a pure read; an Index is safe for concurrent use after
// construction.
package index
