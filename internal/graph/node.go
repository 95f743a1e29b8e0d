package graph

import (
	"fmt"
	"strings"

	"github.com/xcvm-ml/xcc/internal/onnx"
)

// AttrKind tags the payload of an Attribute.
type AttrKind int

// Attribute payload kinds.
const (
	AttrInt AttrKind = iota
	AttrFloat
	AttrString
	AttrInts
	AttrFloats
	AttrStrings
	AttrTensor
	AttrGraph
	AttrTensors
	AttrGraphs
)

// Attribute is a tagged variant over the payload types an operator
// attribute can carry.
type Attribute struct {
	Name    string
	Kind    AttrKind
	I       int64
	F       float64
	S       string
	Ints    []int64
	Floats  []float64
	Strings []string
	Tensor  *Tensor
	Graph   *Graph
	Tensors []*Tensor
	Graphs  []*Graph
}

// Attribute names with dedicated handling.
const (
	attrOrder      = "onikux_order"
	attrStackAxis  = "onikux_stack_axis"
	attrHost       = "onikux_host"
	attrCoverAll   = "onikux_cover_all"
	attrFusionID   = "onikux_fusion_group"
	attrFusionType = "fusion_type"

	attrBody       = "body"
	attrThenBranch = "then_branch"
	attrElseBranch = "else_branch"
	attrSubgraph   = "subgraph"
)

// Node is one operator instance: an op type, ordered input and output
// values, an attribute bag, and optional nested subgraphs for
// control-flow operators.
type Node struct {
	name     string
	op       OpType
	inputs   []*Value
	outputs  []*Value
	attrs    []Attribute
	order    int64
	detached bool

	subgraph   *Graph
	thenBranch *Graph
	elseBranch *Graph
	body       *Graph
}

func newNode(name string, op OpType, inputs, outputs []*Value) *Node {
	return &Node{
		name:    name,
		op:      op,
		inputs:  append([]*Value(nil), inputs...),
		outputs: append([]*Value(nil), outputs...),
		order:   -1,
	}
}

func nodeFromProto(proto *onnx.NodeProto, name string, inputs, outputs []*Value) (*Node, error) {
	n := newNode(name, OpType(proto.OpType), inputs, outputs)
	for i := range proto.Attributes {
		attr, err := attrFromProto(&proto.Attributes[i])
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", name, err)
		}
		if attr.Name == attrOrder && attr.Kind == AttrInt {
			n.order = attr.I
			continue
		}
		if attr.Kind == AttrGraph {
			switch attr.Name {
			case attrBody:
				n.body = attr.Graph
				continue
			case attrThenBranch:
				n.thenBranch = attr.Graph
				continue
			case attrElseBranch:
				n.elseBranch = attr.Graph
				continue
			case attrSubgraph:
				n.subgraph = attr.Graph
				continue
			}
		}
		n.attrs = append(n.attrs, attr)
	}
	return n, nil
}

func attrFromProto(proto *onnx.AttributeProto) (Attribute, error) {
	attr := Attribute{Name: proto.Name}
	switch {
	case proto.G != nil:
		sub, err := FromProto(proto.G)
		if err != nil {
			return attr, fmt.Errorf("attribute %s: %w", proto.Name, err)
		}
		attr.Kind = AttrGraph
		attr.Graph = sub
	case proto.T != nil:
		t, err := TensorFromProto(proto.T)
		if err != nil {
			return attr, fmt.Errorf("attribute %s: %w", proto.Name, err)
		}
		attr.Kind = AttrTensor
		attr.Tensor = t
	case len(proto.Graphs) > 0:
		attr.Kind = AttrGraphs
		for i := range proto.Graphs {
			sub, err := FromProto(&proto.Graphs[i])
			if err != nil {
				return attr, fmt.Errorf("attribute %s: %w", proto.Name, err)
			}
			attr.Graphs = append(attr.Graphs, sub)
		}
	case len(proto.Tensors) > 0:
		attr.Kind = AttrTensors
		for i := range proto.Tensors {
			t, err := TensorFromProto(&proto.Tensors[i])
			if err != nil {
				return attr, fmt.Errorf("attribute %s: %w", proto.Name, err)
			}
			attr.Tensors = append(attr.Tensors, t)
		}
	case len(proto.Ints) > 0 || proto.Type == onnx.AttributeProtoInts:
		attr.Kind = AttrInts
		attr.Ints = append([]int64(nil), proto.Ints...)
	case len(proto.Floats) > 0 || proto.Type == onnx.AttributeProtoFloats:
		attr.Kind = AttrFloats
		for _, f := range proto.Floats {
			attr.Floats = append(attr.Floats, float64(f))
		}
	case len(proto.Strings) > 0 || proto.Type == onnx.AttributeProtoStrings:
		attr.Kind = AttrStrings
		for _, s := range proto.Strings {
			attr.Strings = append(attr.Strings, string(s))
		}
	case proto.Type == onnx.AttributeProtoFloat:
		attr.Kind = AttrFloat
		attr.F = float64(proto.F)
	case proto.Type == onnx.AttributeProtoString:
		attr.Kind = AttrString
		attr.S = string(proto.S)
	default:
		attr.Kind = AttrInt
		attr.I = proto.I
	}
	return attr, nil
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Op returns the operator type.
func (n *Node) Op() OpType { return n.op }

// Inputs returns the ordered input values.
func (n *Node) Inputs() []*Value { return n.inputs }

// Outputs returns the ordered output values.
func (n *Node) Outputs() []*Value { return n.outputs }

// Attrs returns the attribute bag, excluding subgraphs and the
// scheduling rank, which have dedicated accessors.
func (n *Node) Attrs() []Attribute { return n.attrs }

// Order returns the scheduling rank; -1 means unscheduled.
func (n *Node) Order() int64 { return n.order }

// SetOrder assigns the scheduling rank.
func (n *Node) SetOrder(order int64) { n.order = order }

// Detached reports whether the node was detached from the graph.
func (n *Node) Detached() bool { return n.detached }

// Detach removes the node from user/producer edges. The node remains in
// graph storage but is skipped by every traversal.
func (n *Node) Detach() {
	for _, in := range n.inputs {
		in.detachUser(n)
	}
	for _, out := range n.outputs {
		if out.producer == n {
			out.setProducer(nil)
		}
	}
	n.detached = true
}

// NumActualInputs returns the number of non-null inputs.
func (n *Node) NumActualInputs() int {
	count := 0
	for _, in := range n.inputs {
		if !in.IsNull() {
			count++
		}
	}
	return count
}

// Subgraph returns the fusion-group body graph, or nil.
func (n *Node) Subgraph() *Graph { return n.subgraph }

// SetSubgraph attaches the fusion-group body graph.
func (n *Node) SetSubgraph(g *Graph) { n.subgraph = g }

// ThenBranch returns the If then-branch graph, or nil.
func (n *Node) ThenBranch() *Graph { return n.thenBranch }

// SetThenBranch attaches the If then-branch graph.
func (n *Node) SetThenBranch(g *Graph) { n.thenBranch = g }

// ElseBranch returns the If else-branch graph, or nil.
func (n *Node) ElseBranch() *Graph { return n.elseBranch }

// SetElseBranch attaches the If else-branch graph.
func (n *Node) SetElseBranch(g *Graph) { n.elseBranch = g }

// Body returns the Loop body graph, or nil.
func (n *Node) Body() *Graph { return n.body }

// SetBody attaches the Loop body graph.
func (n *Node) SetBody(g *Graph) { n.body = g }

// SubGraphs returns all nested graphs owned by this node.
func (n *Node) SubGraphs() []*Graph {
	var graphs []*Graph
	for _, g := range []*Graph{n.subgraph, n.thenBranch, n.elseBranch, n.body} {
		if g != nil {
			graphs = append(graphs, g)
		}
	}
	for i := range n.attrs {
		if n.attrs[i].Kind == AttrGraph && n.attrs[i].Graph != nil {
			graphs = append(graphs, n.attrs[i].Graph)
		}
		graphs = append(graphs, n.attrs[i].Graphs...)
	}
	return graphs
}

func (n *Node) findAttr(name string) *Attribute {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			return &n.attrs[i]
		}
	}
	return nil
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool { return n.findAttr(name) != nil }

// IntAttr returns an integer attribute, or def when absent.
func (n *Node) IntAttr(name string, def int64) int64 {
	if a := n.findAttr(name); a != nil {
		return a.I
	}
	return def
}

// IntsAttr returns an integer-list attribute, or nil when absent.
func (n *Node) IntsAttr(name string) []int64 {
	if a := n.findAttr(name); a != nil {
		return a.Ints
	}
	return nil
}

// FloatAttr returns a float attribute, or def when absent.
func (n *Node) FloatAttr(name string, def float64) float64 {
	if a := n.findAttr(name); a != nil {
		return a.F
	}
	return def
}

// FloatsAttr returns a float-list attribute, or nil when absent.
func (n *Node) FloatsAttr(name string) []float64 {
	if a := n.findAttr(name); a != nil {
		return a.Floats
	}
	return nil
}

// StringsAttr returns a string-list attribute, or nil when absent.
func (n *Node) StringsAttr(name string) []string {
	if a := n.findAttr(name); a != nil {
		return a.Strings
	}
	return nil
}

// StrAttr returns a string attribute, or def when absent.
func (n *Node) StrAttr(name, def string) string {
	if a := n.findAttr(name); a != nil {
		return a.S
	}
	return def
}

// TensorAttr returns a tensor attribute, or nil when absent.
func (n *Node) TensorAttr(name string) *Tensor {
	if a := n.findAttr(name); a != nil {
		return a.Tensor
	}
	return nil
}

// TensorsAttr returns a tensor-list attribute, or nil when absent.
func (n *Node) TensorsAttr(name string) []*Tensor {
	if a := n.findAttr(name); a != nil {
		return a.Tensors
	}
	return nil
}

// SetIntAttr sets an integer attribute, replacing any previous payload.
func (n *Node) SetIntAttr(name string, v int64) {
	n.setAttr(Attribute{Name: name, Kind: AttrInt, I: v})
}

// SetIntsAttr sets an integer-list attribute.
func (n *Node) SetIntsAttr(name string, v []int64) {
	n.setAttr(Attribute{Name: name, Kind: AttrInts, Ints: append([]int64(nil), v...)})
}

// SetFloatAttr sets a float attribute.
func (n *Node) SetFloatAttr(name string, v float64) {
	n.setAttr(Attribute{Name: name, Kind: AttrFloat, F: v})
}

// SetStrAttr sets a string attribute.
func (n *Node) SetStrAttr(name, v string) {
	n.setAttr(Attribute{Name: name, Kind: AttrString, S: v})
}

// SetTensorAttr sets a tensor attribute.
func (n *Node) SetTensorAttr(name string, t *Tensor) {
	n.setAttr(Attribute{Name: name, Kind: AttrTensor, Tensor: t})
}

// SetTensorsAttr sets a tensor-list attribute.
func (n *Node) SetTensorsAttr(name string, ts []*Tensor) {
	n.setAttr(Attribute{Name: name, Kind: AttrTensors, Tensors: ts})
}

func (n *Node) setAttr(attr Attribute) {
	if a := n.findAttr(attr.Name); a != nil {
		*a = attr
		return
	}
	n.attrs = append(n.attrs, attr)
}

// StackAxis returns the axis scan outputs are stacked along.
func (n *Node) StackAxis() int64 { return n.IntAttr(attrStackAxis, 0) }

// Host reports whether a constant should live on the host.
func (n *Node) Host() bool { return n.IntAttr(attrHost, 0) != 0 }

// CoverAll returns the pooling cover_all flag.
func (n *Node) CoverAll() bool { return n.IntAttr(attrCoverAll, 0) != 0 }

// FusionType returns the fusion backend tag ("tvm", "nvrtc", or empty).
func (n *Node) FusionType() string { return n.StrAttr(attrFusionType, "") }

// FusionGroupID returns the fusion group identifier.
func (n *Node) FusionGroupID() int64 { return n.IntAttr(attrFusionID, 0) }

// ToProto converts the node back to its ONNX representation.
func (n *Node) ToProto() *onnx.NodeProto {
	proto := &onnx.NodeProto{Name: n.name, OpType: string(n.op)}
	for _, in := range n.inputs {
		proto.Inputs = append(proto.Inputs, in.Name())
	}
	for _, out := range n.outputs {
		proto.Outputs = append(proto.Outputs, out.Name())
	}
	for i := range n.attrs {
		proto.Attributes = append(proto.Attributes, attrToProto(&n.attrs[i]))
	}
	for _, sub := range []struct {
		name  string
		graph *Graph
	}{
		{attrBody, n.body},
		{attrThenBranch, n.thenBranch},
		{attrElseBranch, n.elseBranch},
		{attrSubgraph, n.subgraph},
	} {
		if sub.graph != nil {
			proto.Attributes = append(proto.Attributes, onnx.AttributeProto{
				Name: sub.name,
				Type: onnx.AttributeProtoGraph,
				G:    sub.graph.ToProto(),
			})
		}
	}
	if n.order >= 0 {
		proto.Attributes = append(proto.Attributes, onnx.AttributeProto{
			Name: attrOrder,
			Type: onnx.AttributeProtoInt,
			I:    n.order,
		})
	}
	return proto
}

func attrToProto(attr *Attribute) onnx.AttributeProto {
	proto := onnx.AttributeProto{Name: attr.Name}
	switch attr.Kind {
	case AttrInt:
		proto.Type = onnx.AttributeProtoInt
		proto.I = attr.I
	case AttrFloat:
		proto.Type = onnx.AttributeProtoFloat
		proto.F = float32(attr.F)
	case AttrString:
		proto.Type = onnx.AttributeProtoString
		proto.S = []byte(attr.S)
	case AttrInts:
		proto.Type = onnx.AttributeProtoInts
		proto.Ints = append([]int64(nil), attr.Ints...)
	case AttrFloats:
		proto.Type = onnx.AttributeProtoFloats
		for _, f := range attr.Floats {
			proto.Floats = append(proto.Floats, float32(f))
		}
	case AttrStrings:
		proto.Type = onnx.AttributeProtoStrings
		for _, s := range attr.Strings {
			proto.Strings = append(proto.Strings, []byte(s))
		}
	case AttrTensor:
		proto.Type = onnx.AttributeProtoTensor
		proto.T = attr.Tensor.ToProto()
	case AttrGraph:
		proto.Type = onnx.AttributeProtoGraph
		proto.G = attr.Graph.ToProto()
	case AttrTensors:
		proto.Type = onnx.AttributeProtoTensors
		for _, t := range attr.Tensors {
			proto.Tensors = append(proto.Tensors, *t.ToProto())
		}
	case AttrGraphs:
		proto.Type = onnx.AttributeProtoGraphs
		for _, g := range attr.Graphs {
			proto.Graphs = append(proto.Graphs, *g.ToProto())
		}
	}
	return proto
}

func (n *Node) String() string {
	ins := make([]string, len(n.inputs))
	for i, v := range n.inputs {
		ins[i] = v.Name()
	}
	outs := make([]string, len(n.outputs))
	for i, v := range n.outputs {
		outs[i] = v.Name()
	}
	return fmt.Sprintf("%s(%s: %s -> %s)", n.op, n.name, strings.Join(ins, ","), strings.Join(outs, ","))
}
