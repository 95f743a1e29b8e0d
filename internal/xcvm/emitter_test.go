package xcvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcvm-ml/xcc/internal/config"
	"github.com/xcvm-ml/xcc/internal/graph"
)

func emitScheduled(t *testing.T, g *graph.Graph) *Program {
	t.Helper()
	graph.ScheduleComputationOrder(g)
	prog, err := Emit(g, config.Default())
	require.NoError(t, err)
	return prog
}

func opNames(prog *Program) []string {
	names := make([]string, len(prog.Instructions))
	for i := range prog.Instructions {
		names[i] = prog.Instructions[i].Op
	}
	return names
}

func findOp(t *testing.T, prog *Program, op string) int {
	t.Helper()
	idx := -1
	for i := range prog.Instructions {
		if prog.Instructions[i].Op == op {
			require.Equal(t, -1, idx, "found two %s instructions", op)
			idx = i
		}
	}
	require.NotEqual(t, -1, idx, "no %s instruction", op)
	return idx
}

func countOp(prog *Program, op string) int {
	n := 0
	for i := range prog.Instructions {
		if prog.Instructions[i].Op == op {
			n++
		}
	}
	return n
}

// checkRegisterLifetimes asserts no register is referenced after its
// Free before being written again.
func checkRegisterLifetimes(t *testing.T, prog *Program) {
	t.Helper()
	// Ops whose leading register operand reads instead of writes.
	readsFirst := map[string]bool{
		"Out": true, "Free": true, "Jmp": true, "JmpTrue": true, "JmpFalse": true,
		"Print": true, "SequenceAppend": true,
	}
	freed := make(map[int]bool)
	for i := range prog.Instructions {
		inst := &prog.Instructions[i]
		if inst.Op == "Free" {
			reg := inst.Inputs[0].Reg
			assert.False(t, freed[reg], "instr %d: double free of $%d", i, reg)
			freed[reg] = true
			continue
		}
		for j, operand := range inst.Inputs {
			switch operand.Kind {
			case OperandRegister:
				if operand.Reg < 0 {
					continue
				}
				if j == 0 && !readsFirst[inst.Op] {
					delete(freed, operand.Reg)
					continue
				}
				assert.False(t, freed[operand.Reg],
					"instr %d (%s): use of freed register $%d", i, inst.Op, operand.Reg)
			case OperandRegisters:
				for _, reg := range operand.Regs {
					assert.False(t, freed[reg],
						"instr %d (%s): use of freed register $%d", i, inst.Op, reg)
				}
			}
		}
	}
}

func TestEmitIdentityFunction(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.NewTensorType(graph.DtypeFloat32, []int64{2}))
	y := g.AddOutputValue("y", graph.NewTensorType(graph.DtypeFloat32, []int64{2}))
	g.AddNode(graph.OpIdentity, []*graph.Value{x}, []*graph.Value{y}, "")

	prog := emitScheduled(t, g)
	assert.Equal(t, []string{"In", "Identity", "Free", "Out", "Free"}, opNames(prog))

	in := prog.Instructions[0]
	assert.Equal(t, "x", in.Inputs[1].Str)
	out := prog.Instructions[3]
	assert.Equal(t, "y", out.Inputs[0].Str)
	// The Identity reads the register In bound and writes the one Out
	// publishes.
	id := prog.Instructions[1]
	assert.Equal(t, in.Inputs[0].Reg, id.Inputs[1].Reg)
	assert.Equal(t, out.Inputs[1].Reg, id.Inputs[0].Reg)

	checkRegisterLifetimes(t, prog)
}

func TestEmitOutPerDeclaredOutputAtTail(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y1 := g.AddOutputValue("y1", graph.UnknownType())
	y2 := g.AddOutputValue("y2", graph.UnknownType())
	g.AddNode(graph.OpRelu, []*graph.Value{x}, []*graph.Value{y1}, "")
	g.AddNode(graph.OpTanh, []*graph.Value{x}, []*graph.Value{y2}, "")

	prog := emitScheduled(t, g)
	var outs []string
	for i := range prog.Instructions {
		if prog.Instructions[i].Op == "Out" {
			outs = append(outs, prog.Instructions[i].Inputs[0].Str)
		}
	}
	assert.Equal(t, []string{"y1", "y2"}, outs)
	// Nothing but Out/Free after the last computing instruction.
	tanh := findOp(t, prog, "Tanh")
	for i := tanh + 1; i < prog.Len(); i++ {
		op := prog.Instructions[i].Op
		assert.True(t, op == "Out" || op == "Free", "unexpected tail op %s", op)
	}
	checkRegisterLifetimes(t, prog)
}

func TestEmitMaxPoolScratchWorkspace(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	pool := g.AddNode(graph.OpMaxPool, []*graph.Value{x}, []*graph.Value{y}, "")
	pool.SetIntsAttr("kernel_shape", []int64{2, 2})

	prog := emitScheduled(t, g)
	poolIdx := findOp(t, prog, "MaxPool")
	inst := prog.Instructions[poolIdx]
	scratch := inst.Inputs[1].Reg
	// The workspace register has no backing value and is freed right
	// after the pool.
	next := prog.Instructions[poolIdx+1]
	assert.Equal(t, "Free", next.Op)
	assert.Equal(t, scratch, next.Inputs[0].Reg)
	// Default strides and symmetric pads.
	assert.Equal(t, []int64{2, 2}, inst.Inputs[3].Ints)
	assert.Equal(t, []int64{1, 1}, inst.Inputs[4].Ints)
	assert.Equal(t, []int64{0, 0}, inst.Inputs[5].Ints)
	checkRegisterLifetimes(t, prog)
}

func TestEmitAveragePoolScratchWorkspace(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	pool := g.AddNode(graph.OpAveragePool, []*graph.Value{x}, []*graph.Value{y}, "")
	pool.SetIntsAttr("kernel_shape", []int64{3, 3})

	prog := emitScheduled(t, g)
	poolIdx := findOp(t, prog, "AveragePool")
	scratch := prog.Instructions[poolIdx].Inputs[1].Reg
	next := prog.Instructions[poolIdx+1]
	assert.Equal(t, "Free", next.Op)
	assert.Equal(t, scratch, next.Inputs[0].Reg)
}

func TestEmitIf(t *testing.T) {
	buildBranch := func(name string, pick int) *graph.Graph {
		b := graph.New(name)
		in0 := b.AddInputValue(name+"_in0", graph.UnknownType())
		in1 := b.AddInputValue(name+"_in1", graph.UnknownType())
		out := b.AddOutputValue(name+"_out", graph.UnknownType())
		picked := []*graph.Value{in0, in1}[pick]
		b.AddNode(graph.OpIdentity, []*graph.Value{picked}, []*graph.Value{out}, "")
		return b
	}

	g := graph.New("g")
	cond := g.AddInputValue("cond", graph.UnknownType())
	a := g.AddInputValue("a", graph.UnknownType())
	b := g.AddInputValue("b", graph.UnknownType())
	out := g.AddOutputValue("out", graph.UnknownType())
	ifNode := g.AddNode(graph.OpIf, []*graph.Value{cond, a, b}, []*graph.Value{out}, "")
	ifNode.SetThenBranch(buildBranch("then", 0))
	ifNode.SetElseBranch(buildBranch("else", 1))

	prog := emitScheduled(t, g)

	jmpTrue := findOp(t, prog, "JmpTrue")
	jmp := findOp(t, prog, "Jmp")
	assert.Less(t, jmpTrue, jmp)

	// The then branch starts right after the else branch's exit jump and
	// the exit jump lands right after the then branch.
	thenStart := prog.Instructions[jmpTrue].Inputs[1].Int
	done := prog.Instructions[jmp].Inputs[0].Int
	assert.Equal(t, int64(jmp+1), thenStart)
	assert.Greater(t, done, thenStart)
	assert.LessOrEqual(t, done, int64(prog.Len()))

	// Every instruction between the jumps belongs to exactly one branch;
	// both branches write the If output exactly once.
	outReg := 0
	for i := range prog.Instructions {
		if prog.Instructions[i].Op == "Out" {
			outReg = prog.Instructions[i].Inputs[1].Reg
		}
	}
	writes := 0
	for i := range prog.Instructions {
		inst := &prog.Instructions[i]
		if inst.Op == "Identity" && inst.Inputs[0].Reg == outReg {
			writes++
		}
	}
	assert.Equal(t, 2, writes)
	checkRegisterLifetimes(t, prog)
}

func buildLoopBody(withScan bool) *graph.Graph {
	body := graph.New("body")
	body.AddInputValue("iter", graph.UnknownType())
	cond := body.AddInputValue("cond", graph.UnknownType())
	bs := body.AddInputValue("bs", graph.UnknownType())
	condOut := body.AddOutputValue("cond_out", graph.UnknownType())
	bsOut := body.AddOutputValue("bs_out", graph.UnknownType())
	one := body.AddValue("one")
	konst := body.AddNode(graph.OpConstant, nil, []*graph.Value{one}, "")
	konst.SetTensorAttr("value", graph.NewInt64Tensor("", nil, []int64{1}))
	body.AddNode(graph.OpIdentity, []*graph.Value{cond}, []*graph.Value{condOut}, "")
	body.AddNode(graph.OpAdd, []*graph.Value{bs, one}, []*graph.Value{bsOut}, "")
	if withScan {
		scanOut := body.AddOutputValue("scan_out", graph.UnknownType())
		body.AddNode(graph.OpIdentity, []*graph.Value{bs}, []*graph.Value{scanOut}, "")
	}
	return body
}

func TestEmitLoopCountingToThree(t *testing.T) {
	g := graph.New("g")
	max := g.AddInputValue("max", graph.UnknownType())
	terminal := g.AddNullValue()
	s := g.AddInputValue("s", graph.UnknownType())
	sOut := g.AddOutputValue("s_out", graph.UnknownType())
	loop := g.AddNode(graph.OpLoop, []*graph.Value{max, terminal, s}, []*graph.Value{sOut}, "")
	loop.SetBody(buildLoopBody(false))

	prog := emitScheduled(t, g)

	// One guarded entry: the pre-loop JmpFalse skips the whole body.
	jmpFalse := findOp(t, prog, "JmpFalse")
	jmpTrue := findOp(t, prog, "JmpTrue")
	assert.Less(t, jmpFalse, jmpTrue)
	loopBegin := prog.Instructions[jmpTrue].Inputs[1].Int
	assert.Equal(t, int64(jmpFalse+1), loopBegin)
	assert.Equal(t, int64(jmpTrue+1), prog.Instructions[jmpFalse].Inputs[1].Int)

	// No scan outputs, so no sequences.
	assert.Equal(t, 0, countOp(prog, "SequenceCreate"))
	assert.Equal(t, 0, countOp(prog, "SequenceStack"))

	// The final state lands in the declared output.
	outIdx := findOp(t, prog, "Out")
	assert.Equal(t, "s_out", prog.Instructions[outIdx].Inputs[0].Str)
	checkRegisterLifetimes(t, prog)
}

func TestEmitLoopScanOutputs(t *testing.T) {
	g := graph.New("g")
	max := g.AddInputValue("max", graph.UnknownType())
	terminal := g.AddNullValue()
	s := g.AddInputValue("s", graph.UnknownType())
	sOut := g.AddOutputValue("s_out", graph.UnknownType())
	scan := g.AddOutputValue("scan", graph.UnknownType())
	loop := g.AddNode(graph.OpLoop, []*graph.Value{max, terminal, s}, []*graph.Value{sOut, scan}, "")
	loop.SetBody(buildLoopBody(true))
	loop.SetIntAttr("onikux_stack_axis", 1)

	prog := emitScheduled(t, g)

	// A sequence accumulates the per-iteration value and is stacked into
	// the scan output at loop exit.
	create := findOp(t, prog, "SequenceCreate")
	stack := findOp(t, prog, "SequenceStack")
	jmpTrue := findOp(t, prog, "JmpTrue")
	assert.Less(t, create, jmpTrue)
	assert.Greater(t, stack, jmpTrue)
	assert.GreaterOrEqual(t, countOp(prog, "SequenceAppend"), 1)
	assert.Equal(t, int64(1), prog.Instructions[stack].Inputs[2].Int)
	checkRegisterLifetimes(t, prog)
}

func TestEmitLoopInfiniteRejected(t *testing.T) {
	g := graph.New("g")
	s := g.AddInputValue("s", graph.UnknownType())
	sOut := g.AddOutputValue("s_out", graph.UnknownType())
	loop := g.AddNode(graph.OpLoop,
		[]*graph.Value{g.AddNullValue(), g.AddNullValue(), s}, []*graph.Value{sOut}, "")
	loop.SetBody(buildLoopBody(false))

	graph.ScheduleComputationOrder(g)
	_, err := Emit(g, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infinite loop")
}

func TestEmitSequenceAppendFastPath(t *testing.T) {
	g := graph.New("g")
	seq := g.AddInputValue("seq", graph.UnknownType())
	x := g.AddInputValue("x", graph.UnknownType())
	out := g.AddOutputValue("out", graph.UnknownType())
	g.AddNode(graph.OpOnikuxSequenceAppend, []*graph.Value{seq, x}, []*graph.Value{out}, "")

	prog := emitScheduled(t, g)
	assert.Equal(t, 1, countOp(prog, "SequenceMove"))
	assert.Equal(t, 0, countOp(prog, "SequenceCopy"))
	move := findOp(t, prog, "SequenceMove")
	app := findOp(t, prog, "SequenceAppend")
	assert.Equal(t, move+1, app)
}

func TestEmitSequenceAppendCopiesWithTwoUsers(t *testing.T) {
	g := graph.New("g")
	seq := g.AddInputValue("seq", graph.UnknownType())
	x := g.AddInputValue("x", graph.UnknownType())
	out := g.AddOutputValue("out", graph.UnknownType())
	size := g.AddOutputValue("size", graph.UnknownType())
	g.AddNode(graph.OpOnikuxSequenceSize, []*graph.Value{seq}, []*graph.Value{size}, "")
	g.AddNode(graph.OpOnikuxSequenceAppend, []*graph.Value{seq, x}, []*graph.Value{out}, "")

	prog := emitScheduled(t, g)
	assert.Equal(t, 1, countOp(prog, "SequenceCopy"))
	assert.Equal(t, 0, countOp(prog, "SequenceMove"))
}

func TestEmitFloatScalarConstant(t *testing.T) {
	g := graph.New("g")
	c := g.AddOutputValue("c", graph.UnknownType())
	konst := g.AddNode(graph.OpConstant, nil, []*graph.Value{c}, "")
	konst.SetTensorAttr("value", graph.NewFloat32Tensor("", nil, []float32{2.5}))
	konst.SetIntAttr("onikux_host", 1)

	prog := emitScheduled(t, g)
	idx := findOp(t, prog, "FloatScalarConstant")
	inst := prog.Instructions[idx]
	assert.Equal(t, 2.5, inst.Inputs[1].Float)
	assert.Equal(t, int64(1), inst.Inputs[3].Int, "onikux_host must carry into the host flag")
}

func TestEmitIntVectorConstant(t *testing.T) {
	g := graph.New("g")
	c := g.AddOutputValue("c", graph.UnknownType())
	konst := g.AddNode(graph.OpConstant, nil, []*graph.Value{c}, "")
	konst.SetTensorAttr("value", graph.NewInt64Tensor("", []int64{2}, []int64{5, 7}))

	prog := emitScheduled(t, g)
	idx := findOp(t, prog, "IntConstant")
	inst := prog.Instructions[idx]
	assert.Equal(t, []int64{5, 7}, inst.Inputs[1].Ints)
	assert.Equal(t, []int64{2}, inst.Inputs[3].Ints)
	// int64 vectors stay on the host.
	assert.Equal(t, int64(1), inst.Inputs[4].Int)
}

func TestEmitSequenceConstants(t *testing.T) {
	g := graph.New("g")
	c := g.AddOutputValue("c", graph.UnknownType())
	konst := g.AddNode(graph.OpOnikuxSequenceConstants, nil, []*graph.Value{c}, "")
	konst.SetTensorsAttr("value", []*graph.Tensor{
		graph.NewInt64Tensor("", nil, []int64{1}),
		graph.NewInt64Tensor("", nil, []int64{2}),
	})

	prog := emitScheduled(t, g)
	assert.Equal(t, 2, countOp(prog, "IntScalarConstant"))
	assert.Equal(t, 1, countOp(prog, "SequenceCreate"))
	assert.Equal(t, 2, countOp(prog, "SequenceAppend"))
	// Each scratch register is released after its append.
	create := findOp(t, prog, "SequenceCreate")
	frees := 0
	for i := create; i < prog.Len(); i++ {
		if prog.Instructions[i].Op == "Free" {
			frees++
		}
	}
	assert.GreaterOrEqual(t, frees, 2)
}

func TestEmitBatchNormalizationOutputsKept(t *testing.T) {
	g := graph.New("g")
	var ins []*graph.Value
	for _, name := range []string{"x", "scale", "b", "mean", "var"} {
		ins = append(ins, g.AddInputValue(name, graph.UnknownType()))
	}
	y := g.AddOutputValue("y", graph.UnknownType())
	extra := g.AddValueTyped("extra", graph.UnknownType(), graph.KindTemp)
	g.AddNode(graph.OpBatchNormalization, ins, []*graph.Value{y, extra}, "")

	prog := emitScheduled(t, g)
	bn := findOp(t, prog, "BatchNormalization")
	extraReg := prog.Instructions[bn].Inputs[2].Reg
	// The driver must not auto-free BN outputs; the VM owns them.
	for i := range prog.Instructions {
		if prog.Instructions[i].Op == "Free" {
			assert.NotEqual(t, extraReg, prog.Instructions[i].Inputs[0].Reg)
		}
	}
}

func TestEmitBatchNormalizationOpaqueRemap(t *testing.T) {
	g := graph.New("g")
	var ins []*graph.Value
	for _, name := range []string{"x", "scale", "b", "mean", "var"} {
		ins = append(ins, g.AddInputValue(name, graph.UnknownType()))
	}
	y := g.AddOutputValue("y", graph.UnknownType())
	saved := g.AddValueTyped("saved", graph.OpaqueType(), graph.KindTemp)
	g.AddNode(graph.OpBatchNormalization, ins, []*graph.Value{y, saved}, "")

	prog := emitScheduled(t, g)
	bn := prog.Instructions[findOp(t, prog, "BatchNormalization")]
	// The trailing opaque output moves into the second result slot.
	assert.NotEqual(t, -1, bn.Inputs[1].Reg)
	assert.Equal(t, -1, bn.Inputs[2].Reg)
}

func TestEmitFusionGroupInline(t *testing.T) {
	body := graph.New("fused")
	bx := body.AddInputValue("bx", graph.UnknownType())
	by := body.AddOutputValue("by", graph.UnknownType())
	body.AddNode(graph.OpRelu, []*graph.Value{bx}, []*graph.Value{by}, "")

	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	fusion := g.AddNode(graph.OpOnikuxFusionGroup, []*graph.Value{x}, []*graph.Value{y}, "")
	fusion.SetSubgraph(body)

	prog := emitScheduled(t, g)
	// Inline expansion: bind inputs, run body, free body registers, move
	// body outputs out.
	assert.Equal(t, 1, countOp(prog, "Relu"))
	assert.GreaterOrEqual(t, countOp(prog, "Identity"), 2)
	checkRegisterLifetimes(t, prog)
}

type stubTVMBuilder struct{}

func (stubTVMBuilder) Build(nodes []*graph.Node, fusionGroupID int64, inputs, outputs []*graph.Value) (string, string, error) {
	return "/tmp/fused.so", "fused_kernel", nil
}

func TestEmitFusionGroupTVM(t *testing.T) {
	body := graph.New("fused")
	bx := body.AddInputValue("bx", graph.UnknownType())
	by := body.AddOutputValue("by", graph.UnknownType())
	body.AddNode(graph.OpRelu, []*graph.Value{bx}, []*graph.Value{by}, "")

	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.NewTensorType(graph.DtypeFloat32, []int64{4}))
	fusion := g.AddNode(graph.OpOnikuxFusionGroup, []*graph.Value{x}, []*graph.Value{y}, "")
	fusion.SetSubgraph(body)
	fusion.SetStrAttr("fusion_type", "tvm")

	graph.ScheduleComputationOrder(g)
	cfg := config.Default()
	cfg.UseTVM = true
	e := NewEmitter(cfg)
	e.SetTVMBuilder(stubTVMBuilder{})
	require.NoError(t, e.EmitModel(g, false))

	prog := e.Program()
	idx := findOp(t, prog, "TVM")
	inst := prog.Instructions[idx]
	assert.Equal(t, "/tmp/fused.so", inst.Inputs[3].Str)
	assert.Equal(t, "fused_kernel", inst.Inputs[4].Str)
	assert.Equal(t, []int64{4}, inst.Inputs[5].Shape)
	// The body is not expanded inline.
	assert.Equal(t, 0, countOp(prog, "Relu"))
}

type stubNVRTCBuilder struct{}

func (stubNVRTCBuilder) Build(nodes []*graph.Node, fusionGroupID int64, inputs, outputs []*graph.Value) (string, error) {
	return "__global__ void fused() {}", nil
}

func TestEmitFusionGroupNVRTC(t *testing.T) {
	body := graph.New("fused")
	bx := body.AddInputValue("bx", graph.UnknownType())
	by := body.AddOutputValue("by", graph.UnknownType())
	body.AddNode(graph.OpRelu, []*graph.Value{bx}, []*graph.Value{by}, "")

	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	fusion := g.AddNode(graph.OpOnikuxFusionGroup, []*graph.Value{x}, []*graph.Value{y}, "")
	fusion.SetSubgraph(body)
	fusion.SetStrAttr("fusion_type", "nvrtc")
	fusion.SetIntAttr("onikux_fusion_group", 7)

	graph.ScheduleComputationOrder(g)
	cfg := config.Default()
	cfg.UseNVRTC = true
	e := NewEmitter(cfg)
	e.SetNVRTCBuilder(stubNVRTCBuilder{})
	require.NoError(t, e.EmitModel(g, false))

	prog := e.Program()
	idx := findOp(t, prog, "ElementWiseNvrtc")
	inst := prog.Instructions[idx]
	assert.Contains(t, inst.Inputs[3].Str, "__global__")
	assert.Equal(t, int64(7), inst.Inputs[4].Int)
}

func TestEmitUnsupportedOp(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	g.AddNode(graph.OpType("Bogus"), []*graph.Value{x}, []*graph.Value{y}, "")

	graph.ScheduleComputationOrder(g)
	_, err := Emit(g, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported op")
}

func TestEmitAsymmetricPadsRejected(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	w := g.AddInputValue("w", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	conv := g.AddNode(graph.OpConv, []*graph.Value{x, w}, []*graph.Value{y}, "")
	conv.SetIntsAttr("pads", []int64{1, 0, 2, 0})

	graph.ScheduleComputationOrder(g)
	_, err := Emit(g, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatched pads")
}

func TestEmitDilationsRejected(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	w := g.AddInputValue("w", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	conv := g.AddNode(graph.OpConv, []*graph.Value{x, w}, []*graph.Value{y}, "")
	conv.SetIntsAttr("dilations", []int64{2, 2})

	graph.ScheduleComputationOrder(g)
	_, err := Emit(g, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dilation")
}

func TestEmitAutoPadRejected(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	pool := g.AddNode(graph.OpMaxPool, []*graph.Value{x}, []*graph.Value{y}, "")
	pool.SetStrAttr("auto_pad", "SAME_UPPER")

	graph.ScheduleComputationOrder(g)
	_, err := Emit(g, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auto_pad")
}

func TestEmitPadModeRejected(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	pad := g.AddNode(graph.OpPad, []*graph.Value{x}, []*graph.Value{y}, "")
	pad.SetStrAttr("mode", "reflect")

	graph.ScheduleComputationOrder(g)
	_, err := Emit(g, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constant padding")
}

func TestEmitSoftmaxNegativeAxisRemap(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	sm := g.AddNode(graph.OpSoftmax, []*graph.Value{x}, []*graph.Value{y}, "")
	sm.SetIntAttr("axis", -1)

	prog := emitScheduled(t, g)
	idx := findOp(t, prog, "Softmax")
	assert.Equal(t, int64(1), prog.Instructions[idx].Inputs[2].Int)
}

func TestEmitSliceAxesDefault(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	slice := g.AddNode(graph.OpSlice, []*graph.Value{x}, []*graph.Value{y}, "")
	slice.SetIntsAttr("starts", []int64{0, 1})
	slice.SetIntsAttr("ends", []int64{2, 3})

	prog := emitScheduled(t, g)
	idx := findOp(t, prog, "Slice")
	assert.Equal(t, []int64{0, 1}, prog.Instructions[idx].Inputs[2].Ints)
}

func TestEmitNodesBareSubset(t *testing.T) {
	g := graph.New("g")
	x := g.AddValue("x")
	y := g.AddValue("y")
	node := g.AddNode(graph.OpIdentity, []*graph.Value{x}, []*graph.Value{y}, "")

	prog, outputIDs, err := EmitNodes([]*graph.Node{node}, []*graph.Value{y}, config.Default())
	require.NoError(t, err)
	require.Len(t, outputIDs, 1)
	require.Equal(t, 1, prog.Len())
	assert.Equal(t, "Identity", prog.Instructions[0].Op)
	assert.Equal(t, outputIDs[0], prog.Instructions[0].Inputs[0].Reg)
}

func TestEmitInstructionStamping(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.UnknownType())
	y := g.AddOutputValue("y", graph.UnknownType())
	g.AddNode(graph.OpRelu, []*graph.Value{x}, []*graph.Value{y}, "")

	prog := emitScheduled(t, g)
	relu := prog.Instructions[findOp(t, prog, "Relu")]
	assert.GreaterOrEqual(t, relu.ID, int64(0), "lowered instructions carry the node order")
	assert.Contains(t, relu.DebugInfo, "Relu")

	for i := range prog.Instructions {
		if prog.Instructions[i].Op != "Free" {
			continue
		}
		free := prog.Instructions[i]
		assert.Equal(t, int64(-1), free.ID, "housekeeping instructions carry no order")
		assert.True(t, strings.HasPrefix(free.DebugInfo, "@"), "frees carry a line tag")
	}
}

func TestEmitDumpValueNames(t *testing.T) {
	g := graph.New("g")
	x := g.AddInputValue("x", graph.NewTensorType(graph.DtypeFloat32, []int64{2}))
	y := g.AddOutputValue("y", graph.NewTensorType(graph.DtypeFloat32, []int64{2}))
	g.AddNode(graph.OpIdentity, []*graph.Value{x}, []*graph.Value{y}, "")
	graph.ScheduleComputationOrder(g)

	var log strings.Builder
	cfg := config.Default()
	cfg.Log = &log
	e := NewEmitter(cfg)
	require.NoError(t, e.EmitModel(g, true))
	assert.Contains(t, log.String(), "2 variables")
	assert.Contains(t, log.String(), "$1: x")
}
