package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xcvm-ml/xcc/internal/onnx"
)

// Graph owns the values and nodes of one computation graph. Nested
// subgraphs (If branches, Loop bodies, fusion groups) are owned by their
// parent node and are full Graphs themselves.
type Graph struct {
	name string
	doc  string

	allValues    []*Value
	inputValues  []*Value
	outputValues []*Value
	tempValues   []*Value

	nodes []*Node
	genID int
}

// New creates an empty graph.
func New(name string) *Graph {
	return &Graph{name: name}
}

// FromProto constructs a graph from an ONNX GraphProto, wiring
// producer/user edges and auto-promoting names that appear only in node
// input/output lists to temporary values.
func FromProto(proto *onnx.GraphProto) (*Graph, error) {
	g := &Graph{name: proto.Name, doc: proto.DocString}
	byName := make(map[string]*Value)

	for i := range proto.Inputs {
		vi := &proto.Inputs[i]
		value := newValue(vi.Name, TypeFromProto(vi.Type), KindInput)
		value.doc = vi.DocString
		g.allValues = append(g.allValues, value)
		g.inputValues = append(g.inputValues, value)
		if _, dup := byName[value.Name()]; dup {
			return nil, fmt.Errorf("graph %s: duplicated value name: %s", g.name, value.Name())
		}
		byName[value.Name()] = value
	}
	for i := range proto.Outputs {
		vi := &proto.Outputs[i]
		value := newValue(vi.Name, TypeFromProto(vi.Type), KindOutput)
		value.doc = vi.DocString
		g.allValues = append(g.allValues, value)
		g.outputValues = append(g.outputValues, value)
		if existing, dup := byName[value.Name()]; dup {
			// A declared output may share its name with an internal
			// value; keep SSA by routing it through an Identity.
			g.AddNode(OpIdentity, []*Value{existing}, []*Value{value}, "")
		} else {
			byName[value.Name()] = value
		}
	}
	for i := range proto.ValueInfo {
		vi := &proto.ValueInfo[i]
		name := vi.Name
		if existing, dup := byName[name]; dup {
			if !existing.IsOutput() {
				return nil, fmt.Errorf("graph %s: duplicated value name: %s", g.name, name)
			}
			// The internal value shares its name with a declared
			// output. Rename the temporary to keep value names unique;
			// nodes wire to it by the declared name and an Identity
			// forwards it into the output slot.
			value := newValue(g.GenSym(name), TypeFromProto(vi.Type), KindTemp)
			value.doc = vi.DocString
			g.allValues = append(g.allValues, value)
			g.tempValues = append(g.tempValues, value)
			g.AddNode(OpIdentity, []*Value{value}, []*Value{existing}, "")
			byName[name] = value
			continue
		}
		value := newValue(name, TypeFromProto(vi.Type), KindTemp)
		value.doc = vi.DocString
		g.allValues = append(g.allValues, value)
		g.tempValues = append(g.tempValues, value)
		byName[name] = value
	}

	for i := range proto.Initializers {
		tensor, err := TensorFromProto(&proto.Initializers[i])
		if err != nil {
			return nil, fmt.Errorf("graph %s: %w", g.name, err)
		}
		value, ok := byName[tensor.Name()]
		if !ok {
			return nil, fmt.Errorf("graph %s: invalid name for an initializer: %s", g.name, tensor.Name())
		}
		if err := value.ResetInitializer(tensor); err != nil {
			return nil, fmt.Errorf("graph %s: %w", g.name, err)
		}
	}

	getValue := func(name string) *Value {
		if v, ok := byName[name]; ok {
			return v
		}
		v := g.AddValue(name)
		byName[name] = v
		return v
	}

	for i := range proto.Nodes {
		np := &proto.Nodes[i]
		var inputs, outputs []*Value
		for _, name := range np.Inputs {
			inputs = append(inputs, getValue(name))
		}
		for _, name := range np.Outputs {
			outputs = append(outputs, getValue(name))
		}
		name := np.Name
		if name == "" {
			name = g.GenSym(np.OpType)
		}
		node, err := nodeFromProto(np, name, inputs, outputs)
		if err != nil {
			return nil, fmt.Errorf("graph %s: %w", g.name, err)
		}
		g.addNode(node)
	}
	return g, nil
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// DocString returns the documentation string.
func (g *Graph) DocString() string { return g.doc }

// AllValues returns every value owned by the graph.
func (g *Graph) AllValues() []*Value { return g.allValues }

// InputValues returns the declared inputs in order.
func (g *Graph) InputValues() []*Value { return g.inputValues }

// OutputValues returns the declared outputs in order.
func (g *Graph) OutputValues() []*Value { return g.outputValues }

// TempValues returns the temporary values in order.
func (g *Graph) TempValues() []*Value { return g.tempValues }

// Nodes returns every node in storage, including detached ones.
func (g *Graph) Nodes() []*Node { return g.nodes }

// LiveNodes returns the nodes that have not been detached.
func (g *Graph) LiveNodes() []*Node {
	var nodes []*Node
	for _, n := range g.nodes {
		if !n.detached {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// AddValue adds a temporary value with unknown type. An empty name
// yields a null value.
func (g *Graph) AddValue(name string) *Value {
	return g.addValue(name, UnknownType(), KindTemp)
}

// AddValueTyped adds a value of the given kind and type.
func (g *Graph) AddValueTyped(name string, typ *Type, kind ValueKind) *Value {
	return g.addValue(name, typ, kind)
}

// AddInputValue adds a declared input.
func (g *Graph) AddInputValue(name string, typ *Type) *Value {
	return g.addValue(name, typ, KindInput)
}

// AddOutputValue adds a declared output.
func (g *Graph) AddOutputValue(name string, typ *Type) *Value {
	return g.addValue(name, typ, KindOutput)
}

// AddNullValue adds a null value for an optional operand slot.
func (g *Graph) AddNullValue() *Value {
	return g.addValue("", UnknownType(), KindNull)
}

func (g *Graph) addValue(name string, typ *Type, kind ValueKind) *Value {
	if name == "" && kind != KindNull {
		kind = KindNull
	}
	value := newValue(name, typ, kind)
	g.allValues = append(g.allValues, value)
	switch kind {
	case KindInput:
		g.inputValues = append(g.inputValues, value)
	case KindOutput:
		g.outputValues = append(g.outputValues, value)
	case KindTemp:
		g.tempValues = append(g.tempValues, value)
	}
	return value
}

// AddNode adds a node of the given op type, wiring user and producer
// edges. The node name is generated from base, or from the op type when
// base is empty.
func (g *Graph) AddNode(op OpType, inputs, outputs []*Value, base string) *Node {
	if base == "" {
		base = string(op)
	}
	node := newNode(g.GenSym(base), op, inputs, outputs)
	g.addNode(node)
	return node
}

func (g *Graph) addNode(node *Node) {
	for _, in := range node.inputs {
		in.addUser(node)
	}
	for _, out := range node.outputs {
		out.setProducer(node)
	}
	g.nodes = append(g.nodes, node)
}

// DetachNode removes a node from traversal; storage is retained.
func (g *Graph) DetachNode(node *Node) {
	node.Detach()
}

// GenSym returns a fresh symbol derived from base.
func (g *Graph) GenSym(base string) string {
	g.genID++
	if base == "" {
		return fmt.Sprintf("gensym_%d", g.genID)
	}
	return fmt.Sprintf("%s_gensym_%d", base, g.genID)
}

// TopologicallySortedNodes returns a legal execution order for all live
// nodes reachable from the declared inputs. Nodes with no actual inputs
// (e.g. Constant) seed the traversal.
func (g *Graph) TopologicallySortedNodes() []*Node {
	inputCounts := make(map[*Node]int)
	for _, node := range g.LiveNodes() {
		inputCounts[node] = node.NumActualInputs()
	}

	var queue []*Value
	for _, v := range g.inputValues {
		queue = append(queue, v)
	}
	var sorted []*Node
	for _, node := range g.LiveNodes() {
		if inputCounts[node] == 0 {
			sorted = append(sorted, node)
			queue = append(queue, node.outputs...)
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, node := range v.Users() {
			count, ok := inputCounts[node]
			if !ok {
				continue
			}
			count--
			inputCounts[node] = count
			if count == 0 {
				sorted = append(sorted, node)
				queue = append(queue, node.outputs...)
			}
		}
	}
	return sorted
}

// NecessaryValues collects every value backward-reachable from the given
// outputs through producer edges.
func (g *Graph) NecessaryValues(outputs []*Value) map[*Value]bool {
	queue := append([]*Value(nil), outputs...)
	seen := make(map[*Value]bool)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if node := v.Producer(); node != nil {
			for _, in := range node.inputs {
				if seen[in] {
					continue
				}
				seen[in] = true
				queue = append(queue, in)
			}
		}
	}
	return seen
}

// NecessaryNodesAndInputCounts discovers the nodes needed to compute the
// given outputs and returns each with its pending actual-input count.
// Sink nodes (no outputs) and backprop stack pushes are always necessary.
func (g *Graph) NecessaryNodesAndInputCounts(outputs []*Value) map[*Node]int {
	var queue []*Node
	for _, v := range outputs {
		queue = append(queue, v.Producer())
	}
	for _, node := range g.nodes {
		if !node.detached && (len(node.outputs) == 0 || node.op == OpOnikuxBackpropStackPush) {
			queue = append(queue, node)
		}
	}

	inputCounts := make(map[*Node]int)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node == nil || node.detached {
			continue
		}
		if _, ok := inputCounts[node]; ok {
			continue
		}
		inputCounts[node] = node.NumActualInputs()
		for _, in := range node.inputs {
			queue = append(queue, in.Producer())
			for _, user := range in.Users() {
				if len(user.outputs) == 0 {
					queue = append(queue, user)
				}
			}
		}
		for _, out := range node.outputs {
			for _, user := range out.Users() {
				if len(user.outputs) == 0 {
					queue = append(queue, user)
				}
			}
		}
	}
	return inputCounts
}

// ComputationSequence returns the externally provided schedule: every
// live node with a non-negative order, sorted ascending.
func (g *Graph) ComputationSequence() []*Node {
	var nodes []*Node
	for _, node := range g.nodes {
		if !node.detached && node.order >= 0 {
			nodes = append(nodes, node)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].order < nodes[j].order })
	return nodes
}

// SubGraph looks up a nested graph by name across all nodes.
func (g *Graph) SubGraph(name string) (*Graph, error) {
	var found *Graph
	for _, node := range g.nodes {
		for _, sub := range node.SubGraphs() {
			if sub.Name() == name {
				if found != nil {
					return nil, fmt.Errorf("two subgraphs found for name: %s", name)
				}
				found = sub
			}
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no subgraph found for name: %s", name)
	}
	return found, nil
}

// ResetGradients detaches gradient peers, restoring each peer's type
// from its origin value.
func (g *Graph) ResetGradients() {
	for _, v := range g.allValues {
		if gv := v.Grad(); gv != nil {
			gv.SetType(v.Type().Clone())
			v.SetGrad(nil)
		}
	}
}

// DumpSubGraphs writes the subgraph tree rooted at this graph.
func (g *Graph) DumpSubGraphs(w io.Writer, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", depth), g.name)
	for _, node := range g.nodes {
		for _, sub := range node.SubGraphs() {
			sub.DumpSubGraphs(w, depth+1)
		}
	}
}

// ToProto converts the graph back to its ONNX representation. Null
// values and detached nodes are not serialized.
func (g *Graph) ToProto() *onnx.GraphProto {
	proto := &onnx.GraphProto{Name: g.name, DocString: g.doc}
	for _, v := range g.allValues {
		vi := onnx.ValueInfoProto{Name: v.Name(), Type: v.Type().ToProto(), DocString: v.DocString()}
		switch {
		case v.IsNull():
			continue
		case v.IsInput():
			proto.Inputs = append(proto.Inputs, vi)
		case v.IsOutput():
			proto.Outputs = append(proto.Outputs, vi)
		default:
			proto.ValueInfo = append(proto.ValueInfo, vi)
		}
		if init := v.Initializer(); init != nil {
			proto.Initializers = append(proto.Initializers, *init.ToProto())
		}
	}
	for _, node := range g.nodes {
		if node.detached {
			continue
		}
		proto.Nodes = append(proto.Nodes, *node.ToProto())
	}
	return proto
}

func (g *Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", g.name)
	for _, v := range g.allValues {
		fmt.Fprintf(&b, "  value %s\n", v)
	}
	for _, node := range g.nodes {
		if node.detached {
			continue
		}
		fmt.Fprintf(&b, "  node %s\n", node)
	}
	return b.String()
}
