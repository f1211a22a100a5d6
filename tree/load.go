package tree

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the declarative form of a tree, as read from a .json or .yaml
// definition file. Links reference their endpoints as
// "<node id>.<socket name>".
type Document struct {
	Name  string    `json:"name" yaml:"name"`
	Nodes []NodeDef `json:"nodes" yaml:"nodes"`
	Links []LinkDef `json:"links,omitempty" yaml:"links,omitempty"`
}

// NodeDef declares one node in a tree definition.
type NodeDef struct {
	// ID is the definition-local identifier links refer to. Required and
	// unique within the document.
	ID string `json:"id" yaml:"id"`

	// IDName is the node type identifier. Required.
	IDName string `json:"idname" yaml:"idname"`

	// Name is the display name. Defaults to ID if empty.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Inputs  []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// LinkDef declares one link in a tree definition.
type LinkDef struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Load reads a tree definition from a file and builds a Tree from it.
// The format is automatically detected by file extension (.json, .yaml, .yml).
// The definition is validated before construction; see Document.Build.
func Load(path string) (*Tree, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("tree definition file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree definition: %w", err)
	}

	ext := filepath.Ext(path)
	var doc Document

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON tree definition: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML tree definition: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tree definition format: %s (supported: .json, .yaml, .yml)", ext)
	}

	return doc.Build()
}

// Build validates the document and constructs a Tree from it.
//
// Validation rules:
//   - every node has an id and an idname
//   - node ids are unique within the document
//   - every link endpoint resolves to a declared "<node id>.<socket name>"
//   - link sources are outputs and link destinations are inputs
func (d *Document) Build() (*Tree, error) {
	t := New(d.Name)

	byID := make(map[string]*Node, len(d.Nodes))
	for i, def := range d.Nodes {
		if def.ID == "" {
			return nil, fmt.Errorf("node at index %d is missing required field 'id'", i)
		}
		if def.IDName == "" {
			return nil, fmt.Errorf("node %s at index %d is missing required field 'idname'", def.ID, i)
		}
		if byID[def.ID] != nil {
			return nil, fmt.Errorf("node %s: %w", def.ID, ErrDuplicateNodeID)
		}

		name := def.Name
		if name == "" {
			name = def.ID
		}
		n := t.AddNode(def.IDName, name)
		for _, in := range def.Inputs {
			n.AddInput(in)
		}
		for _, out := range def.Outputs {
			n.AddOutput(out)
		}
		byID[def.ID] = n
	}

	for i, def := range d.Links {
		from, err := resolveEndpoint(byID, def.From, Out)
		if err != nil {
			return nil, fmt.Errorf("link at index %d: %w", i, err)
		}
		to, err := resolveEndpoint(byID, def.To, In)
		if err != nil {
			return nil, fmt.Errorf("link at index %d: %w", i, err)
		}
		if _, err := t.Connect(from, to); err != nil {
			return nil, fmt.Errorf("link at index %d: %w", i, err)
		}
	}

	return t, nil
}

// resolveEndpoint parses an "<node id>.<socket name>" reference and returns
// the matching socket on the expected side of the node.
func resolveEndpoint(byID map[string]*Node, ref string, dir Direction) (*Socket, error) {
	nodeID, socketName, ok := strings.Cut(ref, ".")
	if !ok {
		return nil, fmt.Errorf("endpoint %q is not of the form <node id>.<socket name>: %w", ref, ErrUnknownEndpoint)
	}

	n := byID[nodeID]
	if n == nil {
		return nil, fmt.Errorf("endpoint %q: node %q: %w", ref, nodeID, ErrUnknownEndpoint)
	}

	sockets := n.Inputs()
	if dir == Out {
		sockets = n.Outputs()
	}
	for _, s := range sockets {
		if s.Name() == socketName {
			return s, nil
		}
	}
	return nil, fmt.Errorf("endpoint %q: no %s socket named %q on node %q: %w", ref, dir, socketName, nodeID, ErrUnknownEndpoint)
}
