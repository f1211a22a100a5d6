package tree

import "errors"

// Sentinel errors for tree construction and loading.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrSocketDirection indicates that a link endpoint has the wrong
	// direction: the source of a link must be an output socket and the
	// destination must be an input socket.
	//
	// Example:
	//	_, err := t.Connect(in, out) // reversed
	//	if errors.Is(err, tree.ErrSocketDirection) {
	//	    log.Error("links run from outputs to inputs")
	//	}
	ErrSocketDirection = errors.New("wrong socket direction for link endpoint")

	// ErrDuplicateNodeID indicates that a tree definition declares two nodes
	// with the same id. Node ids must be unique within a definition because
	// links reference their endpoints by "<node id>.<socket name>".
	ErrDuplicateNodeID = errors.New("duplicate node id in tree definition")

	// ErrUnknownEndpoint indicates that a link in a tree definition
	// references a node id or socket name that the definition does not
	// declare.
	ErrUnknownEndpoint = errors.New("link endpoint not declared in tree definition")
)
