package tree

import "sync"

// Default idnames recognized by the node classifier.
const (
	// RerouteIDName is the idname of the standard pass-through node.
	RerouteIDName = "NodeReroute"

	// FrameIDName is the idname of the standard grouping node.
	FrameIDName = "NodeFrame"
)

// classifier is the global idname classification registry.
var (
	classifyMu sync.RWMutex
	reroutes   = map[string]bool{RerouteIDName: true}
	frames     = map[string]bool{FrameIDName: true}
)

// RegisterReroute registers additional idnames to be classified as reroute
// nodes. Reroute nodes are single-input, single-output pass-throughs that
// forward a value without semantic change; the indexing layers resolve
// straight through them.
//
// Safe for concurrent use.
func RegisterReroute(idnames ...string) {
	classifyMu.Lock()
	defer classifyMu.Unlock()
	for _, idname := range idnames {
		reroutes[idname] = true
	}
}

// RegisterFrame registers additional idnames to be classified as frame
// nodes. Frame nodes are purely organizational and play no data-flow role.
//
// Safe for concurrent use.
func RegisterFrame(idnames ...string) {
	classifyMu.Lock()
	defer classifyMu.Unlock()
	for _, idname := range idnames {
		frames[idname] = true
	}
}

// IsReroute returns true if the node is classified as a pass-through
// reroute node.
func IsReroute(n *Node) bool {
	classifyMu.RLock()
	defer classifyMu.RUnlock()
	return reroutes[n.IDName]
}

// IsFrame returns true if the node is classified as an organizational frame
// node.
func IsFrame(n *Node) bool {
	classifyMu.RLock()
	defer classifyMu.RUnlock()
	return frames[n.IDName]
}
