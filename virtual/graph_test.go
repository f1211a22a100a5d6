package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/nodegraph/tree"
)

func rerouteChainTree() (t *tree.Tree, a, rr, b *tree.Node) {
	t = tree.New("chain")

	a = t.AddNode("ShaderNodeTexImage", "A")
	o1 := a.AddOutput("o1")

	rr = t.AddNode(tree.RerouteIDName, "Reroute")
	rIn := rr.AddInput("Input")
	rOut := rr.AddOutput("Output")

	b = t.AddNode("ShaderNodeBsdfPrincipled", "B")
	i1 := b.AddInput("i1")

	mustConnect(t, o1, rIn)
	mustConnect(t, rOut, i1)
	return t, a, rr, b
}

func mustConnect(t *tree.Tree, from, to *tree.Socket) {
	if _, err := t.Connect(from, to); err != nil {
		panic(err)
	}
}

func TestNewGraph(t *testing.T) {
	g := NewGraph()

	assert.NotEmpty(t, g.ID())
	assert.False(t, g.Frozen())
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Links())
}

func TestAddNode(t *testing.T) {
	tr := tree.New("t")
	n := tr.AddNode("ShaderNodeBsdfPrincipled", "BSDF")
	base := n.AddInput("Base Color")
	rough := n.AddInput("Roughness")
	out := n.AddOutput("BSDF")

	g := NewGraph()
	vn := g.AddNode(tr, n)

	require.Len(t, g.Nodes(), 1)
	assert.Same(t, vn, g.Nodes()[0])
	assert.Same(t, g, vn.Graph())
	assert.Same(t, tr, vn.Tree())
	assert.Same(t, n, vn.Raw())
	assert.Equal(t, "BSDF", vn.Name())
	assert.Equal(t, "ShaderNodeBsdfPrincipled", vn.IDName())

	require.Len(t, vn.Inputs(), 2)
	require.Len(t, vn.Outputs(), 1)
	assert.Same(t, base, vn.Input(0).Raw())
	assert.Same(t, rough, vn.Input(1).Raw())
	assert.Same(t, out, vn.Output(0).Raw())

	in0 := vn.Input(0)
	assert.Same(t, vn, in0.Node())
	assert.Equal(t, "Base Color", in0.Name())
	assert.True(t, in0.IsInput())
	assert.False(t, in0.IsOutput())
	assert.True(t, vn.Output(0).IsOutput())
}

func TestAddAllOfTree(t *testing.T) {
	tr, _, _, _ := rerouteChainTree()

	g := NewGraph()
	g.AddAllOfTree(tr)

	// Unlike the index package, reroutes stay first-class entries.
	assert.Len(t, g.Nodes(), 3)
	assert.Len(t, g.Links(), 2)
}

func TestAddLink(t *testing.T) {
	tr := tree.New("t")
	a := tr.AddNode("ShaderNodeTexImage", "A")
	o := a.AddOutput("o")
	b := tr.AddNode("ShaderNodeBsdfPrincipled", "B")
	i := b.AddInput("i")

	g := NewGraph()
	va := g.AddNode(tr, a)
	vb := g.AddNode(tr, b)

	l := g.AddLink(va.Output(0), vb.Input(0))
	require.Len(t, g.Links(), 1)
	assert.Same(t, l, g.Links()[0])
	assert.Same(t, va.Output(0), l.From())
	assert.Same(t, vb.Input(0), l.To())
	assert.Same(t, o, l.From().Raw())
	assert.Same(t, i, l.To().Raw())
}

func TestAddLink_ContractViolations(t *testing.T) {
	tr := tree.New("t")
	a := tr.AddNode("ShaderNodeTexImage", "A")
	a.AddOutput("o")
	b := tr.AddNode("ShaderNodeBsdfPrincipled", "B")
	b.AddInput("i")

	g := NewGraph()
	va := g.AddNode(tr, a)
	vb := g.AddNode(tr, b)

	assert.Panics(t, func() { g.AddLink(nil, vb.Input(0)) })
	assert.Panics(t, func() { g.AddLink(va.Output(0), nil) })

	// Reversed directions.
	assert.Panics(t, func() { g.AddLink(vb.Input(0), va.Output(0)) })
}

func TestAddLink_ForeignSocket(t *testing.T) {
	tr := tree.New("t")
	a := tr.AddNode("ShaderNodeTexImage", "A")
	a.AddOutput("o")
	b := tr.AddNode("ShaderNodeBsdfPrincipled", "B")
	b.AddInput("i")

	g := NewGraph()
	other := NewGraph()
	va := g.AddNode(tr, a)
	vb := other.AddNode(tr, b)

	assert.Panics(t, func() { g.AddLink(va.Output(0), vb.Input(0)) })
}

func TestFreezeAndIndex_UnconnectedNodes(t *testing.T) {
	tr := tree.New("t")
	a := tr.AddNode("ShaderNodeTexImage", "A")
	a.AddOutput("o")
	b := tr.AddNode("ShaderNodeBsdfPrincipled", "B")
	b.AddInput("i")

	g := NewGraph()
	g.AddNode(tr, a)
	g.AddNode(tr, b)
	g.FreezeAndIndex()

	assert.True(t, g.Frozen())
	assert.Len(t, g.Nodes(), 2)
	assert.Empty(t, g.Links())
	assert.Empty(t, g.InputsWithLinks())
}

func TestFreezeAndIndex_ResolvesRerouteChains(t *testing.T) {
	tr, a, rr, b := rerouteChainTree()

	g := NewGraph()
	g.AddAllOfTree(tr)
	g.FreezeAndIndex()

	va := g.Nodes()[0]
	vrr := g.Nodes()[1]
	vb := g.Nodes()[2]
	require.Same(t, a, va.Raw())
	require.Same(t, rr, vrr.Raw())
	require.Same(t, b, vb.Raw())

	// Direct links are one-hop.
	require.Len(t, vb.Input(0).DirectLinks(), 1)
	assert.Same(t, vrr.Output(0), vb.Input(0).DirectLinks()[0])

	// Resolved links skip through the reroute.
	require.Len(t, vb.Input(0).Links(), 1)
	assert.Same(t, va.Output(0), vb.Input(0).Links()[0])

	require.Len(t, va.Output(0).Links(), 1)
	assert.Same(t, vb.Input(0), va.Output(0).Links()[0])

	// The reroute's own input resolves to the real origin as well.
	require.Len(t, vrr.Input(0).Links(), 1)
	assert.Same(t, va.Output(0), vrr.Input(0).Links()[0])
}

func TestInputsWithLinks(t *testing.T) {
	tr, _, _, _ := rerouteChainTree()

	g := NewGraph()
	g.AddAllOfTree(tr)
	g.FreezeAndIndex()

	// Exactly the input sockets whose resolved set is non-empty: the
	// reroute's input and B.i1, in node order.
	vrr := g.Nodes()[1]
	vb := g.Nodes()[2]
	assert.Equal(t, []*Socket{vrr.Input(0), vb.Input(0)}, g.InputsWithLinks())

	for _, in := range g.InputsWithLinks() {
		assert.NotEmpty(t, in.Links())
	}
}

func TestNodesWithIDName(t *testing.T) {
	tr := tree.New("t")
	a := tr.AddNode("ShaderNodeTexImage", "A")
	b := tr.AddNode("ShaderNodeBsdfPrincipled", "B")
	c := tr.AddNode("ShaderNodeTexImage", "C")

	g := NewGraph()
	va := g.AddNode(tr, a)
	vb := g.AddNode(tr, b)
	vc := g.AddNode(tr, c)
	g.FreezeAndIndex()

	assert.Equal(t, []*Node{va, vc}, g.NodesWithIDName("ShaderNodeTexImage"))
	assert.Equal(t, []*Node{vb}, g.NodesWithIDName("ShaderNodeBsdfPrincipled"))
	assert.Empty(t, g.NodesWithIDName("ShaderNodeEmission"))
}

func TestMergesMultipleTrees(t *testing.T) {
	// Two trees ingested into one graph, then linked across tree
	// boundaries, e.g. a node group flattened into its parent.
	t1 := tree.New("outer")
	a := t1.AddNode("ShaderNodeTexImage", "A")
	a.AddOutput("o")

	t2 := tree.New("inner")
	b := t2.AddNode("ShaderNodeBsdfPrincipled", "B")
	b.AddInput("i")

	g := NewGraph()
	g.AddAllOfTree(t1)
	g.AddAllOfTree(t2)

	va := g.Nodes()[0]
	vb := g.Nodes()[1]
	g.AddLink(va.Output(0), vb.Input(0))
	g.FreezeAndIndex()

	assert.Same(t, t1, va.Tree())
	assert.Same(t, t2, vb.Tree())

	require.Len(t, vb.Input(0).Links(), 1)
	assert.Same(t, va.Output(0), vb.Input(0).Links()[0])
	assert.Equal(t, []*Socket{vb.Input(0)}, g.InputsWithLinks())
}

func TestFreezeIsOneWay(t *testing.T) {
	tr, _, _, _ := rerouteChainTree()

	g := NewGraph()
	g.AddAllOfTree(tr)
	g.FreezeAndIndex()

	assert.Panics(t, func() { g.FreezeAndIndex() })
	assert.Panics(t, func() { g.AddAllOfTree(tr) })
	assert.Panics(t, func() { g.AddNode(tr, tr.Nodes()[0]) })
	assert.Panics(t, func() {
		g.AddLink(g.Nodes()[0].Output(0), g.Nodes()[2].Input(0))
	})
}

func TestFrozenOnlyAccessors(t *testing.T) {
	tr, _, _, _ := rerouteChainTree()

	g := NewGraph()
	g.AddAllOfTree(tr)

	assert.Panics(t, func() { g.InputsWithLinks() })
	assert.Panics(t, func() { g.NodesWithIDName("ShaderNodeTexImage") })
	assert.Panics(t, func() { g.Nodes()[2].Input(0).DirectLinks() })
	assert.Panics(t, func() { g.Nodes()[2].Input(0).Links() })

	// Nodes and Links are valid in both lifecycle states.
	assert.NotPanics(t, func() { g.Nodes() })
	assert.NotPanics(t, func() { g.Links() })
}

func TestLinked_MultiSource(t *testing.T) {
	tr := tree.New("multi")
	x := tr.AddNode("ShaderNodeTexImage", "X")
	y := tr.AddNode("ShaderNodeTexImage", "Y")
	d := tr.AddNode("ShaderNodeMixRGB", "D")
	in := d.AddInput("in")
	mustConnect(tr, x.AddOutput("out"), in)
	mustConnect(tr, y.AddOutput("out"), in)

	g := NewGraph()
	g.AddAllOfTree(tr)
	g.FreezeAndIndex()

	vx := g.Nodes()[0]
	vy := g.Nodes()[1]
	vd := g.Nodes()[2]

	require.Len(t, vd.Input(0).Links(), 2)
	assert.Same(t, vx.Output(0), vd.Input(0).Links()[0])
	assert.Same(t, vy.Output(0), vd.Input(0).Links()[1])
}

func TestRerouteCycleTerminates(t *testing.T) {
	tr := tree.New("cycle")
	a := tr.AddNode("ShaderNodeTexImage", "A")
	o1 := a.AddOutput("o1")

	r1 := tr.AddNode(tree.RerouteIDName, "R1")
	r1In := r1.AddInput("Input")
	r1Out := r1.AddOutput("Output")
	r2 := tr.AddNode(tree.RerouteIDName, "R2")
	r2In := r2.AddInput("Input")
	r2Out := r2.AddOutput("Output")

	b := tr.AddNode("ShaderNodeBsdfPrincipled", "B")
	i1 := b.AddInput("i1")

	mustConnect(tr, o1, r1In)
	mustConnect(tr, r1Out, r2In)
	mustConnect(tr, r2Out, r1In) // cycle
	mustConnect(tr, r2Out, i1)

	g := NewGraph()
	g.AddAllOfTree(tr)
	g.FreezeAndIndex()

	vb := g.Nodes()[3]
	va := g.Nodes()[0]
	require.Len(t, vb.Input(0).Links(), 1)
	assert.Same(t, va.Output(0), vb.Input(0).Links()[0])
}
