package xcvm

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/xcvm-ml/xcc/internal/config"
	"github.com/xcvm-ml/xcc/internal/graph"
)

// Emitter lowers a scheduled graph into a linear XCVM program. One
// emitter is one emission session: it owns the register-id map for the
// model and every transitively emitted subgraph, and it is not safe for
// concurrent use.
type Emitter struct {
	cfg  *config.Config
	prog *Program

	nextValueID int
	valueIDs    map[*graph.Value]int
	stackIDs    map[int]int
	emitted     map[*graph.Node]bool

	tvm   TVMBuilder
	nvrtc NVRTCBuilder
}

// NewEmitter creates an emitter with a fresh program and register
// namespace.
func NewEmitter(cfg *config.Config) *Emitter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Emitter{
		cfg:         cfg,
		prog:        NewProgram(),
		nextValueID: 1,
		valueIDs:    make(map[*graph.Value]int),
		stackIDs:    make(map[int]int),
		emitted:     make(map[*graph.Node]bool),
	}
}

// SetTVMBuilder installs the TVM kernel builder used for "tvm" fusion
// groups when the configuration enables TVM.
func (e *Emitter) SetTVMBuilder(b TVMBuilder) { e.tvm = b }

// SetNVRTCBuilder installs the NVRTC source builder used for "nvrtc"
// fusion groups when the configuration enables NVRTC.
func (e *Emitter) SetNVRTCBuilder(b NVRTCBuilder) { e.nvrtc = b }

// Program returns the instruction stream built so far. After a failed
// emission the program is partial and must not be executed.
func (e *Emitter) Program() *Program { return e.prog }

// Emit lowers a scheduled graph into a complete program.
func Emit(g *graph.Graph, cfg *config.Config) (*Program, error) {
	e := NewEmitter(cfg)
	if err := e.EmitModel(g, false); err != nil {
		return nil, err
	}
	return e.prog, nil
}

// EmitModel assigns register ids, lowers the graph, emits the Out
// instructions for declared outputs, and drains retained stack
// registers. With dumpValueNames set a per-register summary is written
// to the configured log writer.
func (e *Emitter) EmitModel(g *graph.Graph, dumpValueNames bool) error {
	if err := e.assignGraphValueIDs(g); err != nil {
		return err
	}
	if err := e.emitGraph(g, false, g.OutputValues()); err != nil {
		return err
	}
	if err := e.emitOutputs(g.OutputValues()); err != nil {
		return err
	}
	if dumpValueNames {
		e.dumpValueNames()
	}
	e.emitStackQuit()
	return nil
}

// EmitNodes lowers a bare node list without a surrounding graph.
// Register ids are assigned to every value the nodes touch, in encounter
// order; the returned ids correspond to the fetch values.
func EmitNodes(nodes []*graph.Node, fetches []*graph.Value, cfg *config.Config) (*Program, []int, error) {
	e := NewEmitter(cfg)
	var values []*graph.Value
	seen := make(map[*graph.Value]bool)
	for _, node := range nodes {
		for _, v := range append(append([]*graph.Value(nil), node.Inputs()...), node.Outputs()...) {
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
	}
	if err := e.AssignValueIDs(values); err != nil {
		return nil, nil, err
	}
	outputIDs := make([]int, 0, len(fetches))
	for _, v := range fetches {
		id, err := e.ValueID(v)
		if err != nil {
			return nil, nil, err
		}
		outputIDs = append(outputIDs, id)
	}
	for _, node := range nodes {
		if err := e.emitNode(node); err != nil {
			return nil, nil, err
		}
	}
	return e.prog, outputIDs, nil
}

// AssignValueIDs allocates register ids for an arbitrary value set.
func (e *Emitter) AssignValueIDs(values []*graph.Value) error {
	for _, v := range values {
		if _, ok := e.valueIDs[v]; ok {
			return fmt.Errorf("value id already assigned: %s", v)
		}
		e.valueIDs[v] = e.nextValueID
		e.nextValueID++
	}
	return nil
}

// assignGraphValueIDs allocates ids for a graph's inputs, temporaries,
// then outputs. Output slots with an empty name are allowed and skipped.
func (e *Emitter) assignGraphValueIDs(g *graph.Graph) error {
	if err := e.AssignValueIDs(g.InputValues()); err != nil {
		return err
	}
	if err := e.AssignValueIDs(g.TempValues()); err != nil {
		return err
	}
	for _, v := range g.OutputValues() {
		// Graph outputs are allowed to be null; null slots never take
		// an id and lower to -1 operands instead.
		if v.Name() == "" {
			continue
		}
		if _, ok := e.valueIDs[v]; ok {
			return fmt.Errorf("value id already assigned: %s", v)
		}
		e.valueIDs[v] = e.nextValueID
		e.nextValueID++
	}
	return nil
}

// ValueID returns the register id assigned to a value. The value must be
// named and registered.
func (e *Emitter) ValueID(v *graph.Value) (int, error) {
	if v.Name() == "" {
		return 0, fmt.Errorf("value id requested for unnamed value: %s", v)
	}
	id, ok := e.valueIDs[v]
	if !ok {
		return 0, fmt.Errorf("value not exist: %s", v.Name())
	}
	return id, nil
}

// newTempID allocates a scratch register with no backing value.
func (e *Emitter) newTempID() int {
	id := e.nextValueID
	e.nextValueID++
	return id
}

// stackID returns the register retained for a stack slot.
func (e *Emitter) stackID(i int) (int, error) {
	id, ok := e.stackIDs[i]
	if !ok {
		return 0, fmt.Errorf("stack not exist: %d", i)
	}
	return id, nil
}

// emitGraph walks the computation sequence, lowering each node and
// interleaving In and Free instructions from reference-count liveness.
// In loop mode input binding and input liveness are handled by the
// enclosing control-flow lowering instead.
func (e *Emitter) emitGraph(g *graph.Graph, inLoop bool, outputValues []*graph.Value) error {
	numUsers := make(map[*graph.Value]int)
	if !inLoop {
		for _, v := range g.InputValues() {
			numUsers[v] = len(v.Users())
		}
	}
	for _, v := range g.TempValues() {
		numUsers[v] = len(v.Users())
	}

	stagedInputs := make(map[*graph.Value]bool)
	todoOutputs := make(map[*graph.Value]bool)
	for _, v := range outputValues {
		todoOutputs[v] = true
	}

	for _, node := range g.ComputationSequence() {
		if e.emitted[node] {
			continue
		}
		e.emitted[node] = true

		if !inLoop {
			for _, v := range node.Inputs() {
				if !v.IsInput() || stagedInputs[v] {
					continue
				}
				stagedInputs[v] = true
				id, err := e.ValueID(v)
				if err != nil {
					return err
				}
				e.prog.AddInOp(id, v.Name())
				e.prog.Last().DebugInfo = v.Name()
			}
		}

		if err := e.emitNode(node); err != nil {
			return err
		}

		for _, out := range node.Outputs() {
			// Do not free output values.
			if todoOutputs[out] {
				delete(todoOutputs, out)
				continue
			}
			// BatchNormalization outputs are kept alive for the VM's
			// saved-state handling even when unused here.
			if out.IsTemp() && !out.IsNull() && len(out.Users()) == 0 &&
				node.Op() != graph.OpBatchNormalization {
				id, err := e.ValueID(out)
				if err != nil {
					return err
				}
				e.freeTagged(id)
			}
		}

		for _, in := range node.Inputs() {
			count, ok := numUsers[in]
			if !ok {
				continue
			}
			count--
			if count < 0 {
				return fmt.Errorf("user count underflow for value %s", in.Name())
			}
			numUsers[in] = count
			if count == 0 {
				id, err := e.ValueID(in)
				if err != nil {
					return err
				}
				e.freeTagged(id)
			}
		}
	}
	return nil
}

// emitOutputs appends one Out instruction per declared output, tagging
// each with the output name, then releases the register.
func (e *Emitter) emitOutputs(outputValues []*graph.Value) error {
	for _, v := range outputValues {
		id, err := e.ValueID(v)
		if err != nil {
			return err
		}
		e.prog.AddOutOp(v.Name(), id)
		e.prog.Last().DebugInfo = v.Name()
		e.freeTagged(id)
	}
	return nil
}

// emitStackQuit drains registers retained in the stack-id map.
func (e *Emitter) emitStackQuit() {
	ids := make([]int, 0, len(e.stackIDs))
	for _, id := range e.stackIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		e.freeTagged(id)
	}
}

func (e *Emitter) dumpValueNames() {
	byID := make(map[int]*graph.Value)
	ids := make([]int, 0, len(e.valueIDs))
	for v, id := range e.valueIDs {
		byID[id] = v
		ids = append(ids, id)
	}
	sort.Ints(ids)
	w := e.cfg.LogWriter()
	fmt.Fprintf(w, "=== %d variables ===\n", len(ids))
	var total int64
	for _, id := range ids {
		v := byID[id]
		size := v.NBytes()
		if size > 0 {
			total += size
		}
		fmt.Fprintf(w, "$%d: %s %d\n", id, v.Name(), size)
	}
	fmt.Fprintf(w, "Total size of all values: %dMB\n", total/1000/1000)
}

// fillOpInfo stamps the last instruction with the source node's debug
// string and scheduling rank.
func (e *Emitter) fillOpInfo(node *graph.Node, debug string) {
	inst := e.prog.Last()
	inst.DebugInfo = debug
	inst.ID = node.Order()
}

// freeTagged emits a Free carrying an "@<line>" tag naming the emitter
// source line that scheduled the release.
func (e *Emitter) freeTagged(id int) {
	e.prog.AddFreeOp(id)
	_, _, line, _ := runtime.Caller(1)
	e.prog.Last().DebugInfo = fmt.Sprintf("@%d", line)
}

// at returns the caller's source line for "@<line>" debug tags.
func at() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}
