package xcvm

import (
	"fmt"
	"strings"

	"github.com/xcvm-ml/xcc/internal/graph"
)

// cfTag stamps the last instruction for a control-flow expansion:
// the source node's debug string plus the emitter line that produced
// the instruction.
func (e *Emitter) cfTag(node *graph.Node, debug string, line int) {
	inst := e.prog.Last()
	inst.DebugInfo = fmt.Sprintf("%s @%d", debug, line)
	inst.ID = node.Order()
}

// loopTag is cfTag without the scheduling rank; loop bookkeeping
// instructions stay housekeeping (-1) in the emitted program.
func (e *Emitter) loopTag(debug string, line int) {
	e.prog.Last().DebugInfo = fmt.Sprintf("%s @%d", debug, line)
}

// move copies src into dst and releases src.
func (e *Emitter) move(node *graph.Node, debug string, dst, src int) {
	e.prog.AddIdentityOp(dst, src)
	e.cfTag(node, debug, at())
	e.freeTagged(src)
}

// loopMove is move with loop-style tagging.
func (e *Emitter) loopMove(debug string, dst, src int) {
	e.prog.AddIdentityOp(dst, src)
	e.loopTag(debug, at())
	e.freeTagged(src)
}

func fusionGroupSummary(node *graph.Node) string {
	ops := make([]string, 0, len(node.Subgraph().Nodes()))
	for _, n := range node.Subgraph().Nodes() {
		ops = append(ops, string(n.Op()))
	}
	return fmt.Sprintf("%s (%s)", node, strings.Join(ops, "+"))
}

// emitFusionGroup lowers a fusion-group marker. When the matching
// backend is enabled and installed the body is compiled into a single
// kernel call; otherwise the body is expanded inline with its own
// register scope.
func (e *Emitter) emitFusionGroup(node *graph.Node) error {
	body := node.Subgraph()
	if body == nil {
		return fmt.Errorf("%s: fusion group without a subgraph", node)
	}
	if len(node.Inputs()) != len(body.InputValues()) {
		return fmt.Errorf("%s: %d inputs vs %d body inputs", node, len(node.Inputs()), len(body.InputValues()))
	}
	if len(node.Outputs()) != len(body.OutputValues()) {
		return fmt.Errorf("%s: %d outputs vs %d body outputs", node, len(node.Outputs()), len(body.OutputValues()))
	}
	debug := node.String()

	if e.cfg.UseTVM && node.FusionType() == "tvm" && e.tvm != nil {
		dsoPath, funcName, err := e.tvm.Build(body.LiveNodes(), node.FusionGroupID(), body.InputValues(), body.OutputValues())
		if err != nil {
			return fmt.Errorf("%s: %w", node, err)
		}
		e.cfg.Logf("fusion group (TVM) %s => %s", fusionGroupSummary(node), dsoPath)
		inputs, outputs, err := e.valueIDLists(node)
		if err != nil {
			return err
		}
		if len(outputs) != 1 {
			return fmt.Errorf("%s: TVM fusion supports a single output, have %d", node, len(outputs))
		}
		shape := node.Outputs()[0].Type().Dims
		e.prog.AddTVMOp(outputs, inputs, int64(len(outputs)), dsoPath, funcName, shape)
		e.cfTag(node, debug, at())
		return nil
	}

	if e.cfg.UseNVRTC && node.FusionType() == "nvrtc" && e.nvrtc != nil {
		source, err := e.nvrtc.Build(body.LiveNodes(), node.FusionGroupID(), body.InputValues(), body.OutputValues())
		if err != nil {
			return fmt.Errorf("%s: %w", node, err)
		}
		e.cfg.Logf("fusion group (NVRTC) %s\n%s", fusionGroupSummary(node), source)
		inputs, outputs, err := e.valueIDLists(node)
		if err != nil {
			return err
		}
		e.prog.AddElementWiseNvrtcOp(outputs, inputs, int64(len(outputs)), source, node.FusionGroupID())
		e.cfTag(node, debug, at())
		return nil
	}

	if err := e.assignGraphValueIDs(body); err != nil {
		return err
	}

	for i, from := range node.Inputs() {
		fromID, err := e.ValueID(from)
		if err != nil {
			return err
		}
		toID, err := e.ValueID(body.InputValues()[i])
		if err != nil {
			return err
		}
		e.prog.AddIdentityOp(toID, fromID)
		e.cfTag(node, debug, at())
	}

	if err := e.emitGraph(body, true, body.OutputValues()); err != nil {
		return err
	}

	for _, in := range body.InputValues() {
		id, err := e.ValueID(in)
		if err != nil {
			return err
		}
		e.freeTagged(id)
	}
	for i, from := range body.OutputValues() {
		to := node.Outputs()[i]
		toID, err := e.ValueID(to)
		if err != nil {
			return err
		}
		if from.IsNull() {
			e.prog.AddNullConstantOp(toID)
			e.cfTag(node, debug, at())
			continue
		}
		fromID, err := e.ValueID(from)
		if err != nil {
			return err
		}
		e.move(node, debug, toID, fromID)
	}
	return nil
}

func (e *Emitter) valueIDLists(node *graph.Node) (inputs, outputs []int, err error) {
	for _, v := range node.Inputs() {
		id, err := e.ValueID(v)
		if err != nil {
			return nil, nil, err
		}
		inputs = append(inputs, id)
	}
	for _, v := range node.Outputs() {
		id, err := e.ValueID(v)
		if err != nil {
			return nil, nil, err
		}
		outputs = append(outputs, id)
	}
	return inputs, outputs, nil
}

// emitIf lowers an If into a forward-threaded branch pair:
//
//	       JmpTrue cond, Lthen
//	       <else branch>
//	       Jmp Ldone
//	Lthen: <then branch>
//	Ldone:
//
// Both jump targets are patched once the branch bodies are in place.
func (e *Emitter) emitIf(node *graph.Node) error {
	thenBody := node.ThenBranch()
	elseBody := node.ElseBranch()
	if thenBody == nil || elseBody == nil {
		return fmt.Errorf("%s: If without both branches", node)
	}
	if err := e.assignGraphValueIDs(thenBody); err != nil {
		return err
	}
	if err := e.assignGraphValueIDs(elseBody); err != nil {
		return err
	}
	if len(node.Inputs()) != len(thenBody.InputValues())+1 {
		return fmt.Errorf("%s: %d inputs vs %d then-branch inputs", node, len(node.Inputs()), len(thenBody.InputValues()))
	}
	if len(node.Inputs()) != len(elseBody.InputValues())+1 {
		return fmt.Errorf("%s: %d inputs vs %d else-branch inputs", node, len(node.Inputs()), len(elseBody.InputValues()))
	}
	if len(node.Outputs()) != len(thenBody.OutputValues()) || len(node.Outputs()) != len(elseBody.OutputValues()) {
		return fmt.Errorf("%s: branch output counts do not match", node)
	}
	debug := node.String()

	condID, err := e.ValueID(node.Inputs()[0])
	if err != nil {
		return err
	}

	branchJmp := e.prog.Len()
	e.prog.AddJmpTrueOp(condID, -1)
	e.cfTag(node, debug, at())

	if err := e.emitBranch(node, debug, elseBody); err != nil {
		return err
	}

	doneJmp := e.prog.Len()
	e.prog.AddJmpOp(-1)
	e.cfTag(node, debug, at())

	e.prog.At(branchJmp).Inputs[1].Int = int64(e.prog.Len())

	if err := e.emitBranch(node, debug, thenBody); err != nil {
		return err
	}

	e.prog.At(doneJmp).Inputs[0].Int = int64(e.prog.Len())
	return nil
}

// emitBranch binds the If inputs into the branch body, emits it, frees
// the body inputs, and moves the body outputs into the If outputs.
// Every If output is written exactly once per branch.
func (e *Emitter) emitBranch(node *graph.Node, debug string, body *graph.Graph) error {
	for i, to := range body.InputValues() {
		fromID, err := e.ValueID(node.Inputs()[i+1])
		if err != nil {
			return err
		}
		toID, err := e.ValueID(to)
		if err != nil {
			return err
		}
		e.prog.AddIdentityOp(toID, fromID)
		e.cfTag(node, debug, at())
	}
	if err := e.emitGraph(body, true, body.OutputValues()); err != nil {
		return err
	}
	for _, in := range body.InputValues() {
		id, err := e.ValueID(in)
		if err != nil {
			return err
		}
		e.freeTagged(id)
	}
	for i, from := range body.OutputValues() {
		toID, err := e.ValueID(node.Outputs()[i])
		if err != nil {
			return err
		}
		if from.IsNull() {
			e.prog.AddNullConstantOp(toID)
			e.cfTag(node, debug, at())
			continue
		}
		fromID, err := e.ValueID(from)
		if err != nil {
			return err
		}
		e.move(node, debug, toID, fromID)
	}
	return nil
}

// emitLoop lowers a Loop node. Loop inputs are
// [max_trip_count, terminal_condition, state...]; body inputs are
// [iter, cond, state...]; body outputs are [cond', state'..., scan...];
// loop outputs are [state..., scan...]. Scan outputs accumulate into
// sequences and are stacked at loop exit. Body-local registers live only
// within one iteration.
func (e *Emitter) emitLoop(node *graph.Node) error {
	body := node.Body()
	if body == nil {
		return fmt.Errorf("%s: Loop without a body", node)
	}
	if err := e.assignGraphValueIDs(body); err != nil {
		return err
	}
	bodyIn := body.InputValues()
	bodyOut := body.OutputValues()

	numStates := len(node.Inputs()) - 2
	numScans := len(bodyOut) - 1 - numStates
	if numStates < 0 || len(bodyIn) != numStates+2 {
		return fmt.Errorf("%s: body %s has %d inputs for %d states", node, body.Name(), len(bodyIn), numStates)
	}
	if len(node.Outputs()) != numStates+numScans {
		return fmt.Errorf("%s: body %s has %d outputs for %d states and %d scans",
			node, body.Name(), len(node.Outputs()), numStates, numScans)
	}
	maxTripCount := node.Inputs()[0]
	terminalCondition := node.Inputs()[1]
	if maxTripCount.IsNull() && terminalCondition.IsNull() {
		return fmt.Errorf("%s: infinite loop is detected", node)
	}
	debug := node.String()
	int64Code := int64(graph.DtypeInt64.ToONNX())
	boolCode := int64(graph.DtypeBool.ToONNX())

	// Initialize loop variables.
	iterID, err := e.ValueID(bodyIn[0])
	if err != nil {
		return err
	}
	e.prog.AddIntScalarConstantOp(iterID, 0, int64Code, true)
	e.loopTag(debug, at())
	condID, err := e.ValueID(bodyIn[1])
	if err != nil {
		return err
	}
	e.prog.AddIntScalarConstantOp(condID, 1, boolCode, true)
	e.loopTag(debug, at())
	for i := 0; i < numStates; i++ {
		fromID, err := e.ValueID(node.Inputs()[i+2])
		if err != nil {
			return err
		}
		toID, err := e.ValueID(bodyIn[i+2])
		if err != nil {
			return err
		}
		e.prog.AddIdentityOp(toID, fromID)
		e.loopTag(debug, at())
	}

	// Prepare temporary sequences for scan outputs.
	scanOutIDs := make([]int, 0, numScans)
	for i := 0; i < numScans; i++ {
		id := e.newTempID()
		e.prog.AddSequenceCreateOp(id)
		e.loopTag(debug, at())
		scanOutIDs = append(scanOutIDs, id)
	}

	// Guard the whole loop when either bound can skip it.
	var maxTripID int
	skipLoopJmp := -1
	skipLoopCondID := -1
	if !maxTripCount.IsNull() {
		if maxTripID, err = e.ValueID(maxTripCount); err != nil {
			return err
		}
		zeroID := e.newTempID()
		skipLoopCondID = e.newTempID()
		e.prog.AddIntScalarConstantOp(zeroID, 0, int64Code, true)
		e.loopTag(debug, at())
		e.prog.AddGreaterOp(skipLoopCondID, maxTripID, zeroID)
		e.loopTag(debug, at())
		e.freeTagged(zeroID)
	}
	if !terminalCondition.IsNull() {
		termID, err := e.ValueID(terminalCondition)
		if err != nil {
			return err
		}
		tmpID := e.newTempID()
		if skipLoopCondID >= 0 {
			e.prog.AddMulOp(tmpID, skipLoopCondID, termID)
			e.loopTag(debug, at())
			e.freeTagged(skipLoopCondID)
		} else {
			e.prog.AddIdentityOp(tmpID, termID)
			e.loopTag(debug, at())
		}
		skipLoopCondID = tmpID
	}
	if skipLoopCondID >= 0 {
		skipLoopJmp = e.prog.Len()
		e.prog.AddJmpFalseOp(skipLoopCondID, -1)
		e.loopTag(debug, at())
	}

	loopBegin := e.prog.Len()

	if err := e.emitGraph(body, true, bodyOut); err != nil {
		return err
	}
	oneID := e.newTempID()
	e.prog.AddIntScalarConstantOp(oneID, 1, int64Code, true)
	e.loopTag(debug, at())
	tmpID := e.newTempID()
	e.prog.AddAddOp(tmpID, iterID, oneID)
	e.loopTag(debug, at())
	e.freeTagged(oneID)
	for _, v := range bodyIn {
		id, err := e.ValueID(v)
		if err != nil {
			return err
		}
		e.freeTagged(id)
	}
	e.loopMove(debug, iterID, tmpID)
	condOutID, err := e.ValueID(bodyOut[0])
	if err != nil {
		return err
	}
	e.loopMove(debug, condID, condOutID)

	// Propagate the loop state.
	for i := 0; i < numStates; i++ {
		bodyInID, err := e.ValueID(bodyIn[i+2])
		if err != nil {
			return err
		}
		bodyOutValue := bodyOut[i+1]
		if bodyOutValue.IsNull() {
			e.prog.AddNullConstantOp(bodyInID)
			e.loopTag(debug, at())
			continue
		}
		bodyOutID, err := e.ValueID(bodyOutValue)
		if err != nil {
			return err
		}
		e.loopMove(debug, bodyInID, bodyOutID)
	}

	// Push scan outputs.
	for i := 0; i < numScans; i++ {
		bodyOutID, err := e.ValueID(bodyOut[i+numStates+1])
		if err != nil {
			return err
		}
		e.prog.AddSequenceAppendOp(scanOutIDs[i], bodyOutID)
		e.loopTag(debug, at())
		e.freeTagged(bodyOutID)
	}

	// Check if the loop finishes.
	if terminalCondition.IsNull() {
		e.freeTagged(condID)
		e.prog.AddGreaterOp(condID, maxTripID, iterID)
		e.loopTag(debug, at())
	} else if !maxTripCount.IsNull() {
		e.prog.AddGreaterOp(tmpID, maxTripID, iterID)
		e.loopTag(debug, at())
		tmp2ID := e.newTempID()
		e.prog.AddMulOp(tmp2ID, condID, tmpID)
		e.loopTag(debug, at())
		e.freeTagged(condID)
		e.loopMove(debug, condID, tmp2ID)
		e.freeTagged(tmpID)
	}
	e.prog.AddJmpTrueOp(condID, int64(loopBegin))
	e.loopTag(debug, at())

	if skipLoopJmp >= 0 {
		e.prog.At(skipLoopJmp).Inputs[1].Int = int64(e.prog.Len())
		e.freeTagged(skipLoopCondID)
	}

	// Output final states.
	for i := 0; i < numStates; i++ {
		bodyInID, err := e.ValueID(bodyIn[i+2])
		if err != nil {
			return err
		}
		loopOut := node.Outputs()[i]
		if loopOut.IsNull() {
			e.freeTagged(bodyInID)
			continue
		}
		loopOutID, err := e.ValueID(loopOut)
		if err != nil {
			return err
		}
		e.loopMove(debug, loopOutID, bodyInID)
	}

	// Stack and output scan outputs.
	for i := 0; i < numScans; i++ {
		loopOutID, err := e.ValueID(node.Outputs()[i+numStates])
		if err != nil {
			return err
		}
		e.prog.AddSequenceStackOp(loopOutID, scanOutIDs[i], node.StackAxis())
		e.loopTag(debug, at())
		e.freeTagged(scanOutIDs[i])
	}

	e.freeTagged(iterID)
	e.freeTagged(condID)
	return nil
}
