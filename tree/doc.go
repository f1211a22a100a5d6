// Package tree provides the raw node-tree model that the nodegraph indexing
// layers are built over.
//
// A Tree is an ordered collection of nodes and the links between their
// sockets. Each node carries a type identifier (idname), a display name, and
// ordered input and output socket lists. Links are directional: they always
// run from an output socket to an input socket.
//
// # Building a Tree
//
// Trees are assembled with the fluent builder API:
//
//	t := tree.New("material")
//	a := t.AddNode("ShaderNodeTexImage", "Base Color")
//	out := a.AddOutput("Color")
//	b := t.AddNode("ShaderNodeBsdfPrincipled", "Principled BSDF")
//	in := b.AddInput("Base Color")
//	if _, err := t.Connect(out, in); err != nil {
//	    log.Fatal(err)
//	}
//
// # Loading a Tree
//
// Trees can also be loaded from declarative .json, .yaml, or .yml
// definitions:
//
//	t, err := tree.Load("testdata/material.yaml")
//
// The loader validates node ID uniqueness, link endpoint resolution, and
// socket directions before constructing the tree.
//
// # Node Classification
//
// Reroute nodes (single-input, single-output pass-throughs) and frame nodes
// (purely organizational grouping) are recognized by idname. The defaults
// cover "NodeReroute" and "NodeFrame"; additional idnames can be registered
// with RegisterReroute and RegisterFrame. Registration is safe for
// concurrent use.
//
// # Ownership
//
// The tree package never indexes anything itself. The index and virtual
// packages build derived lookup structures over a Tree; those structures are
// valid only while the tree is not modified.
package tree
