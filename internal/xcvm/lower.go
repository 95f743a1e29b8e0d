package xcvm

import (
	"fmt"
	"math"

	"github.com/xcvm-ml/xcc/internal/graph"
)

// opScope carries one node through lowering. Operand helpers record the
// first failure instead of returning errors so the per-op closures stay
// flat; emitNode surfaces the recorded error afterwards.
type opScope struct {
	e    *Emitter
	node *graph.Node
	err  error
}

type lowerFunc func(*opScope)

// emitNode dispatches one node through the lowering table.
func (e *Emitter) emitNode(node *graph.Node) error {
	fn, ok := lowerTable[node.Op()]
	if !ok {
		return fmt.Errorf("unsupported op: %s (node %s)", node.Op(), node.Name())
	}
	s := &opScope{e: e, node: node}
	fn(s)
	return s.err
}

func (s *opScope) prog() *Program { return s.e.prog }

func (s *opScope) failf(format string, args ...any) {
	if s.err == nil {
		s.err = fmt.Errorf("%s: %s", s.node, fmt.Sprintf(format, args...))
	}
}

func (s *opScope) setErr(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// fill stamps the last emitted instruction with the node's debug string
// and scheduling rank.
func (s *opScope) fill() {
	if s.err == nil && s.prog().Len() > 0 {
		s.e.fillOpInfo(s.node, s.node.String())
	}
}

func (s *opScope) valueID(v *graph.Value) int {
	id, err := s.e.ValueID(v)
	if err != nil {
		s.setErr(fmt.Errorf("%s: %w", s.node, err))
		return 0
	}
	return id
}

// in returns the register of a mandatory input.
func (s *opScope) in(i int) int {
	ins := s.node.Inputs()
	if i >= len(ins) || ins[i].IsNull() {
		s.failf("input %d is mandatory", i)
		return 0
	}
	return s.valueID(ins[i])
}

// oin returns the register of an optional input, or -1 when absent.
func (s *opScope) oin(i int) int {
	ins := s.node.Inputs()
	if i >= len(ins) || ins[i].IsNull() {
		return -1
	}
	return s.in(i)
}

// out returns the register of a mandatory output.
func (s *opScope) out(i int) int {
	outs := s.node.Outputs()
	if i >= len(outs) || outs[i].IsNull() {
		s.failf("output %d is mandatory", i)
		return 0
	}
	return s.valueID(outs[i])
}

// oout returns the register of an optional output, or -1 when absent.
func (s *opScope) oout(i int) int {
	outs := s.node.Outputs()
	if i >= len(outs) || outs[i].IsNull() {
		return -1
	}
	return s.out(i)
}

// allIn returns the registers of every input of a variadic operator.
func (s *opScope) allIn() []int {
	ids := make([]int, 0, len(s.node.Inputs()))
	for i := range s.node.Inputs() {
		ids = append(ids, s.in(i))
	}
	return ids
}

// allOut returns the registers of every output of a variadic operator.
func (s *opScope) allOut() []int {
	ids := make([]int, 0, len(s.node.Outputs()))
	for i := range s.node.Outputs() {
		ids = append(ids, s.out(i))
	}
	return ids
}

func (s *opScope) wantInputs(n int) {
	if len(s.node.Inputs()) != n {
		s.failf("want %d inputs, have %d", n, len(s.node.Inputs()))
	}
}

func (s *opScope) wantInputsBetween(lo, hi int) {
	if n := len(s.node.Inputs()); n < lo || n > hi {
		s.failf("want %d..%d inputs, have %d", lo, hi, n)
	}
}

func (s *opScope) wantOutputs(n int) {
	if len(s.node.Outputs()) != n {
		s.failf("want %d outputs, have %d", n, len(s.node.Outputs()))
	}
}

func (s *opScope) wantOutputsBetween(lo, hi int) {
	if n := len(s.node.Outputs()); n < lo || n > hi {
		s.failf("want %d..%d outputs, have %d", lo, hi, n)
	}
}

// pads keeps the leading half of the symmetric ONNX begin/end padding,
// defaulting to 2-D zero padding.
func (s *opScope) pads() []int64 {
	pads := s.node.IntsAttr("pads")
	if len(pads) == 0 {
		return []int64{0, 0}
	}
	if len(pads)%2 != 0 {
		s.failf("odd pads length %d", len(pads))
		return nil
	}
	half := len(pads) / 2
	for i := 0; i < half; i++ {
		if pads[i] != pads[i+half] {
			s.failf("mismatched pads for beginning and end: %v", pads)
			return nil
		}
	}
	return pads[:half]
}

// strides defaults to 2-D unit strides.
func (s *opScope) strides() []int64 {
	strides := s.node.IntsAttr("strides")
	if len(strides) == 0 {
		return []int64{1, 1}
	}
	return strides
}

func (s *opScope) direction() int64 {
	switch dir := s.node.StrAttr("direction", ""); dir {
	case "", "forward":
		return 0
	case "reverse":
		return 1
	case "bidirectional":
		return 2
	default:
		s.failf("unknown direction: %s", dir)
		return 0
	}
}

// checkUnitDilations rejects dilated convolutions.
func (s *opScope) checkUnitDilations() {
	for _, d := range s.node.IntsAttr("dilations") {
		if d != 1 {
			s.failf("dilation is not supported")
			return
		}
	}
}

func unaryOp(add func(*Program, int, int)) lowerFunc {
	return func(s *opScope) {
		s.wantInputs(1)
		s.wantOutputs(1)
		out, in := s.out(0), s.in(0)
		add(s.prog(), out, in)
		s.fill()
	}
}

func binaryOp(add func(*Program, int, int, int)) lowerFunc {
	return func(s *opScope) {
		s.wantInputs(2)
		s.wantOutputs(1)
		out, a, b := s.out(0), s.in(0), s.in(1)
		add(s.prog(), out, a, b)
		s.fill()
	}
}

func reduceOp(add func(*Program, int, int, []int64, int64)) lowerFunc {
	return func(s *opScope) {
		s.wantInputs(1)
		s.wantOutputs(1)
		add(s.prog(), s.out(0), s.in(0), s.node.IntsAttr("axes"), s.node.IntAttr("keepdims", 1))
		s.fill()
	}
}

// softmaxAxis remaps a negative axis to 1, the opset 1-12 default.
func softmaxAxis(n *graph.Node) int64 {
	axis := n.IntAttr("axis", 1)
	if axis < 0 {
		axis = 1
	}
	return axis
}

var lowerTable map[graph.OpType]lowerFunc

func init() {
	lowerTable = map[graph.OpType]lowerFunc{
		graph.OpNeg:        unaryOp((*Program).AddNegOp),
		graph.OpReciprocal: unaryOp((*Program).AddReciprocalOp),
		graph.OpExp:        unaryOp((*Program).AddExpOp),
		graph.OpLog:        unaryOp((*Program).AddLogOp),
		graph.OpSqrt:       unaryOp((*Program).AddSqrtOp),
		graph.OpTanh:       unaryOp((*Program).AddTanhOp),
		graph.OpAbs:        unaryOp((*Program).AddAbsOp),
		graph.OpRelu:       unaryOp((*Program).AddReluOp),
		graph.OpFloor:      unaryOp((*Program).AddFloorOp),
		graph.OpCeil:       unaryOp((*Program).AddCeilOp),
		graph.OpSigmoid:    unaryOp((*Program).AddSigmoidOp),
		graph.OpNot:        unaryOp((*Program).AddNotOp),
		graph.OpIdentity:   unaryOp((*Program).AddIdentityOp),

		graph.OpAdd:                         binaryOp((*Program).AddAddOp),
		graph.OpSub:                         binaryOp((*Program).AddSubOp),
		graph.OpMul:                         binaryOp((*Program).AddMulOp),
		graph.OpDiv:                         binaryOp((*Program).AddDivOp),
		graph.OpPow:                         binaryOp((*Program).AddPowOp),
		graph.OpEqual:                       binaryOp((*Program).AddEqualOp),
		graph.OpGreater:                     binaryOp((*Program).AddGreaterOp),
		graph.OpAnd:                         binaryOp((*Program).AddAndOp),
		graph.OpOr:                          binaryOp((*Program).AddOrOp),
		graph.OpXor:                         binaryOp((*Program).AddXorOp),
		graph.OpOnikuxGenericIs:             binaryOp((*Program).AddGenericIsOp),
		graph.OpOnikuxReluGrad:              binaryOp((*Program).AddReluGradOp),
		graph.OpOnikuxMaxPoolGrad:           binaryOp((*Program).AddMaxPoolGradOp),
		graph.OpOnikuxAveragePoolGrad:       binaryOp((*Program).AddAveragePoolGradOp),
		graph.OpOnikuxSelectItem:            binaryOp((*Program).AddSelectItemOp),
		graph.OpOnikuxLinearGradWeight:      binaryOp((*Program).AddLinearGradWeightOp),
		graph.OpOnikuxGenericAdd:            binaryOp((*Program).AddGenericAddOp),
		graph.OpOnikuxGenericAccumulateGrad: binaryOp((*Program).AddGenericAccumulateGradOp),

		graph.OpDropout: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputsBetween(1, 2)
			if len(s.node.Outputs()) >= 2 {
				s.e.cfg.Logf("the second output of Dropout is not handled yet")
			}
			s.prog().AddDropoutOp(s.out(0), s.oout(1), s.in(0), s.node.FloatAttr("ratio", 0.5))
			s.fill()
		},
		graph.OpSelu: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputsBetween(1, 2)
			s.prog().AddSeluOp(s.out(0), s.in(0),
				s.node.FloatAttr("alpha", 1.67326319217681884765625),
				s.node.FloatAttr("gamma", 1.05070102214813232421875))
			s.fill()
		},
		graph.OpLeakyRelu: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputsBetween(1, 2)
			s.prog().AddLeakyReluOp(s.out(0), s.in(0), s.node.FloatAttr("alpha", 0.01))
			s.fill()
		},
		graph.OpElu: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputsBetween(1, 2)
			s.prog().AddEluOp(s.out(0), s.in(0), s.node.FloatAttr("alpha", 1.0))
			s.fill()
		},
		graph.OpOnikuxLinear: func(s *opScope) {
			s.prog().AddLinearOp(s.out(0), s.in(0), s.in(1), s.oin(2), s.node.IntAttr("n_batch_axes", 1))
			s.fill()
		},
		graph.OpConv: func(s *opScope) {
			s.wantInputsBetween(2, 3)
			s.wantOutputs(1)
			s.checkUnitDilations()
			s.prog().AddConvOp(s.out(0), s.in(0), s.in(1), s.oin(2), s.strides(), s.pads())
			s.fill()
		},
		graph.OpConvTranspose: func(s *opScope) {
			s.wantInputsBetween(2, 3)
			s.wantOutputs(1)
			s.checkUnitDilations()
			s.prog().AddConvTransposeOp(s.out(0), s.in(0), s.in(1), s.oin(2),
				s.strides(), s.pads(), s.node.IntsAttr("output_shape"))
			s.fill()
		},
		graph.OpOnikuxConvTransposeWithDynamicOutputShape: func(s *opScope) {
			s.wantInputs(3)
			s.wantOutputs(1)
			s.prog().AddConvTransposeWithDynamicShapeOp(s.out(0), s.in(0), s.in(1), s.in(2), s.strides(), s.pads())
			s.fill()
		},
		graph.OpOnikuxConvGradWeight: func(s *opScope) {
			s.wantInputs(3)
			s.wantOutputs(1)
			s.checkUnitDilations()
			s.prog().AddConvGradWeightOp(s.out(0), s.in(0), s.in(1), s.in(2), s.strides(), s.pads())
			s.fill()
		},
		graph.OpRNN: func(s *opScope) {
			s.checkNoRNNActivations()
			s.prog().AddRNNOp(s.oout(0), s.oout(1), s.in(0), s.in(1), s.in(2),
				s.oin(3), s.oin(4), s.oin(5), s.node.IntAttr("hidden_size", 0), s.direction())
			s.fill()
		},
		graph.OpGRU: func(s *opScope) {
			s.checkNoRNNActivations()
			s.prog().AddGRUOp(s.oout(0), s.oout(1), s.in(0), s.in(1), s.in(2),
				s.oin(3), s.oin(4), s.oin(5), s.node.IntAttr("hidden_size", 0),
				s.node.IntAttr("linear_before_reset", 0), s.direction())
			s.fill()
		},
		graph.OpLSTM: func(s *opScope) {
			s.checkNoRNNActivations()
			s.prog().AddLSTMOp(s.oout(0), s.oout(1), s.oout(2), s.oout(3),
				s.in(0), s.in(1), s.in(2), s.oin(3), s.oin(4), s.oin(5), s.oin(6), s.oin(7),
				s.node.IntAttr("hidden_size", 0), s.direction())
			s.fill()
		},
		graph.OpOnikuxLSTMGrad: func(s *opScope) {
			s.prog().AddLSTMGradOp(s.out(0), s.out(1), s.out(2), s.out(3), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpShape: unaryOp((*Program).AddShapeOp),
		graph.OpSize:  unaryOp((*Program).AddSizeOp),
		graph.OpReshape: func(s *opScope) {
			s.wantInputs(2)
			s.wantOutputs(1)
			s.prog().AddReshapeOp(s.out(0), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpExpand: func(s *opScope) {
			s.wantInputs(2)
			s.wantOutputs(1)
			s.prog().AddExpandOp(s.out(0), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpSqueeze: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddSqueezeOp(s.out(0), s.in(0), s.node.IntsAttr("axes"))
			s.fill()
		},
		graph.OpUnsqueeze: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddUnsqueezeOp(s.out(0), s.in(0), s.node.IntsAttr("axes"))
			s.fill()
		},
		graph.OpMatMul: binaryOp((*Program).AddMatMulOp),
		graph.OpGemm: func(s *opScope) {
			s.wantInputs(3)
			s.wantOutputs(1)
			s.prog().AddGemmOp(s.out(0), s.in(0), s.in(1), s.in(2),
				s.node.FloatAttr("alpha", 1.0), s.node.FloatAttr("beta", 1.0),
				s.node.IntAttr("transA", 0), s.node.IntAttr("transB", 0))
			s.fill()
		},
		graph.OpBatchNormalization: lowerBatchNormalization,
		graph.OpOnikuxBatchNormalizationGrad: func(s *opScope) {
			s.wantInputs(2)
			s.wantOutputs(3)
			s.prog().AddBatchNormalizationGradOp(s.out(0), s.out(1), s.out(2), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpLRN: func(s *opScope) {
			alpha := s.node.FloatAttr("alpha", 0.0001)
			beta := s.node.FloatAttr("beta", 0.75)
			bias := s.node.FloatAttr("bias", 1.0)
			size := s.node.IntAttr("size", 0)
			if len(s.node.Outputs()) == 1 {
				tmp := s.e.newTempID()
				s.prog().AddLRNOp(s.out(0), tmp, s.in(0), alpha, beta, bias, size)
				s.fill()
				s.e.freeTagged(tmp)
			} else {
				s.prog().AddLRNOp(s.out(0), s.out(1), s.in(0), alpha, beta, bias, size)
				s.fill()
			}
		},
		graph.OpOnikuxLRNGrad: func(s *opScope) {
			s.prog().AddLRNGradOp(s.out(0), s.in(0), s.in(1), s.in(2), s.in(3),
				s.node.FloatAttr("alpha", 0.0001), s.node.FloatAttr("beta", 0.75),
				s.node.FloatAttr("bias", 1.0), s.node.IntAttr("size", 0))
			s.fill()
		},
		graph.OpPad: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			if mode := s.node.StrAttr("mode", "constant"); mode != "constant" {
				s.failf("only constant padding is supported, not %s", mode)
			}
			s.prog().AddPadOp(s.out(0), s.in(0), s.node.IntsAttr("pads"), s.node.FloatAttr("value", 0.0))
			s.fill()
		},
		graph.OpMaxPool:     lowerMaxPool,
		graph.OpAveragePool: lowerAveragePool,
		graph.OpSoftmax: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddSoftmaxOp(s.out(0), s.in(0), softmaxAxis(s.node))
			s.fill()
		},
		graph.OpLogSoftmax: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddLogSoftmaxOp(s.out(0), s.in(0), softmaxAxis(s.node))
			s.fill()
		},
		graph.OpArgMax: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddArgMaxOp(s.out(0), s.in(0), s.node.IntAttr("axis", 0), s.node.IntAttr("keepdims", 1))
			s.fill()
		},
		graph.OpHardmax: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddHardmaxOp(s.out(0), s.in(0), s.node.IntAttr("axis", 1))
			s.fill()
		},
		graph.OpReduceMax:       reduceOp((*Program).AddReduceMaxOp),
		graph.OpReduceSum:       reduceOp((*Program).AddReduceSumOp),
		graph.OpReduceSumSquare: reduceOp((*Program).AddReduceSumSquareOp),
		graph.OpReduceMean:      reduceOp((*Program).AddReduceMeanOp),
		graph.OpOnikuxReduceSumTo: func(s *opScope) {
			s.wantInputs(2)
			s.wantOutputs(1)
			s.prog().AddReduceSumToOp(s.out(0), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpCast: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddCastOp(s.out(0), s.in(0), s.node.IntAttr("to", 0))
			s.fill()
		},
		graph.OpOneHot: func(s *opScope) {
			s.prog().AddOneHotOp(s.out(0), s.in(0), s.in(1), s.in(2), s.node.IntAttr("axis", -1))
			s.fill()
		},
		graph.OpConstantFill: func(s *opScope) {
			if s.node.IntAttr("input_as_shape", 0) != 0 {
				s.wantInputs(1)
			} else {
				s.wantInputs(0)
			}
			s.wantOutputs(1)
			s.prog().AddConstantFillOp(s.out(0), s.oin(0), s.node.IntAttr("dtype", 1),
				s.node.IntsAttr("extra_shape"), s.node.IntsAttr("shape"), s.node.FloatAttr("value", 0.0))
			s.fill()
		},
		graph.OpSlice: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			starts := s.node.IntsAttr("starts")
			ends := s.node.IntsAttr("ends")
			if len(starts) == 0 || len(ends) == 0 || len(starts) != len(ends) {
				s.failf("bad starts/ends: %v vs %v", starts, ends)
			}
			axes := s.node.IntsAttr("axes")
			if len(axes) == 0 {
				for i := range starts {
					axes = append(axes, int64(i))
				}
			} else if len(axes) != len(starts) {
				s.failf("axes length %d does not match starts length %d", len(axes), len(starts))
			}
			s.prog().AddSliceOp(s.out(0), s.in(0), axes, starts, ends)
			s.fill()
		},
		graph.OpDynamicSlice: func(s *opScope) {
			s.prog().AddDynamicSliceOp(s.out(0), s.in(0), s.in(1), s.in(2), s.oin(3))
			s.fill()
		},
		graph.OpOnikuxDynamicSliceGrad: func(s *opScope) {
			s.prog().AddDynamicSliceGradOp(s.out(0), s.in(0), s.in(1), s.in(2), s.in(3), s.oin(4))
			s.fill()
		},
		graph.OpGather: func(s *opScope) {
			s.wantInputs(2)
			s.wantOutputs(1)
			s.prog().AddGatherOp(s.out(0), s.in(0), s.in(1), s.node.IntAttr("axis", 0))
			s.fill()
		},
		graph.OpOnikuxGatherGrad: func(s *opScope) {
			s.prog().AddGatherGradOp(s.out(0), s.in(0), s.in(1), s.in(2), s.node.IntAttr("axis", 0))
			s.fill()
		},
		graph.OpOnikuxSelectItemGrad: func(s *opScope) {
			s.prog().AddSelectItemGradOp(s.out(0), s.in(0), s.in(1), s.in(2))
			s.fill()
		},
		graph.OpConcat: func(s *opScope) {
			s.wantOutputs(1)
			s.prog().AddConcatOp(s.out(0), s.allIn(), s.node.IntAttr("axis", 0))
			s.fill()
		},
		graph.OpSplit: func(s *opScope) {
			s.wantInputs(1)
			s.prog().AddSplitOp(s.allOut(), s.in(0), s.node.IntAttr("axis", 0), s.node.IntsAttr("split"))
			s.fill()
		},
		graph.OpClip: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddClipOp(s.out(0), s.in(0),
				s.node.FloatAttr("max", math.MaxFloat32), s.node.FloatAttr("min", -math.MaxFloat32))
			s.fill()
		},
		graph.OpMax: func(s *opScope) {
			s.wantOutputs(1)
			s.prog().AddMaxOp(s.out(0), s.allIn())
			s.fill()
		},
		graph.OpTranspose: func(s *opScope) {
			s.wantInputs(1)
			s.wantOutputs(1)
			s.prog().AddTransposeOp(s.out(0), s.in(0), s.node.IntsAttr("perm"))
			s.fill()
		},

		graph.OpOnikuxFusionGroup: func(s *opScope) { s.setErr(s.e.emitFusionGroup(s.node)) },
		graph.OpIf:                func(s *opScope) { s.setErr(s.e.emitIf(s.node)) },
		graph.OpLoop:              func(s *opScope) { s.setErr(s.e.emitLoop(s.node)) },
		graph.OpConstant:          func(s *opScope) { s.setErr(s.e.emitConstant(s.node)) },
		graph.OpOnikuxSequenceConstants: func(s *opScope) {
			s.setErr(s.e.emitConstantSequence(s.node))
		},

		graph.OpOnikuxPrint: func(s *opScope) {
			s.prog().AddPrintOp(s.allIn())
			s.fill()
		},
		graph.OpOnikuxNullConstant: func(s *opScope) {
			s.prog().AddNullConstantOp(s.out(0))
			s.fill()
		},

		graph.OpOnikuxSequenceCreate: func(s *opScope) {
			s.prog().AddSequenceCreateOp(s.out(0))
			s.fill()
		},
		graph.OpOnikuxSequenceSize: func(s *opScope) {
			s.prog().AddSequenceSizeOp(s.out(0), s.in(0))
			s.fill()
		},
		graph.OpOnikuxSequenceLengths: func(s *opScope) {
			s.prog().AddSequenceLengthsOp(s.out(0), s.in(0))
			s.fill()
		},
		graph.OpOnikuxSequenceAppend: func(s *opScope) {
			// When this node is the only user the sequence can be moved in
			// place, keeping append linear instead of copying O(N) tensors.
			if len(s.node.Inputs()) > 0 && len(s.node.Inputs()[0].Users()) == 1 {
				s.prog().AddSequenceMoveOp(s.out(0), s.in(0))
				s.fill()
			} else {
				s.prog().AddSequenceCopyOp(s.out(0), s.in(0))
				s.fill()
			}
			s.prog().AddSequenceAppendOp(s.out(0), s.in(1))
			s.fill()
		},
		graph.OpOnikuxSequencePop: func(s *opScope) {
			if len(s.node.Inputs()) > 0 && len(s.node.Inputs()[0].Users()) == 1 {
				s.prog().AddSequenceMoveOp(s.out(0), s.in(0))
				s.fill()
			} else {
				s.prog().AddSequenceCopyOp(s.out(0), s.in(0))
				s.fill()
			}
			s.prog().AddSequencePopOp(s.out(1), s.out(0))
			s.fill()
		},
		graph.OpOnikuxSequenceLookup: func(s *opScope) {
			s.prog().AddSequenceLookupOp(s.out(0), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpOnikuxSequenceGetSlice: func(s *opScope) {
			s.prog().AddSequenceGetSliceOp(s.out(0), s.in(0), s.oin(1), s.oin(2), s.oin(3))
			s.fill()
		},
		graph.OpOnikuxSequenceLookupGrad: func(s *opScope) {
			s.prog().AddSequenceLookupGradOp(s.out(0), s.in(0), s.in(1), s.in(2))
			s.fill()
		},
		graph.OpOnikuxSequenceGetSliceGrad: func(s *opScope) {
			s.prog().AddSequenceGetSliceGradOp(s.out(0), s.in(0), s.in(1), s.oin(2), s.oin(3), s.oin(4))
			s.fill()
		},
		graph.OpOnikuxSequenceStack: func(s *opScope) {
			s.prog().AddSequenceStackOp(s.out(0), s.in(0), s.node.IntAttr("axis", 0))
			s.fill()
		},
		graph.OpOnikuxSequenceConcat: func(s *opScope) {
			axis := s.node.IntAttr("axis", 0)
			if len(s.node.Outputs()) == 1 {
				tmp := s.e.newTempID()
				s.prog().AddSequenceConcatOp(s.out(0), tmp, s.in(0), axis)
				s.fill()
				s.e.freeTagged(tmp)
			} else {
				s.prog().AddSequenceConcatOp(s.out(0), s.out(1), s.in(0), axis)
				s.fill()
			}
		},
		graph.OpOnikuxSequenceSplitAxis: func(s *opScope) {
			s.prog().AddSequenceSplitAxisOp(s.out(0), s.in(0), s.in(1), s.node.IntAttr("axis", 0))
			s.fill()
		},
		graph.OpOnikuxSequenceSeparate: func(s *opScope) {
			s.prog().AddSequenceSeparateOp(s.out(0), s.in(0), s.node.IntAttr("axis", 0))
			s.fill()
		},
		graph.OpOnikuxSequenceUnpad: func(s *opScope) {
			s.prog().AddSequenceUnpadOp(s.out(0), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpOnikuxSequencePad: func(s *opScope) {
			s.prog().AddSequencePadOp(s.out(0), s.in(0),
				s.node.IntAttr("length", -1), s.node.FloatAttr("value", 0.0))
			s.fill()
		},
		graph.OpOnikuxSequenceRange: func(s *opScope) {
			s.prog().AddSequenceRangeOp(s.out(0), s.in(0), s.oin(1), s.oin(2))
			s.fill()
		},

		graph.OpOnikuxGenericLen: func(s *opScope) {
			s.prog().AddGenericLenOp(s.out(0), s.in(0))
			s.fill()
		},
		graph.OpOnikuxGenericGetItem: func(s *opScope) {
			s.prog().AddGenericGetItemOp(s.out(0), s.in(0), s.in(1))
			s.fill()
		},
		graph.OpOnikuxGenericGetSlice: func(s *opScope) {
			s.prog().AddGenericGetSliceOp(s.out(0), s.in(0), s.oin(1), s.oin(2), s.oin(3))
			s.fill()
		},
	}
}

func (s *opScope) checkNoRNNActivations() {
	if len(s.node.FloatsAttr("activation_alpha")) > 0 {
		s.failf("activation_alpha is not supported yet")
	}
	if len(s.node.FloatsAttr("activation_beta")) > 0 {
		s.failf("activation_beta is not supported yet")
	}
	if a := s.node.StringsAttr("activations"); len(a) > 0 {
		s.failf("activations are not supported yet")
	}
}

func lowerBatchNormalization(s *opScope) {
	s.wantInputs(5)
	s.wantOutputsBetween(1, 6)
	outputs := s.node.Outputs()
	numOnnxOutputs := len(outputs)
	outs := []int{s.out(0)}
	// A trailing opaque output carries the saved state the VM threads
	// into the backward pass; it maps to the second result slot.
	if numOnnxOutputs > 0 && outputs[numOnnxOutputs-1].Type().Kind == graph.TypeOpaque {
		numOnnxOutputs--
		outs = append(outs, s.out(numOnnxOutputs))
	} else {
		outs = append(outs, -1)
	}
	for i := 1; i < numOnnxOutputs; i++ {
		outs = append(outs, s.out(i))
	}
	for len(outs) < 6 {
		outs = append(outs, -1)
	}
	s.prog().AddBatchNormalizationOp(outs[0], outs[1], outs[2], outs[3], outs[4], outs[5],
		s.in(0), s.in(1), s.in(2), s.in(3), s.in(4),
		s.node.FloatAttr("epsilon", 1e-5), s.node.FloatAttr("momentum", 0.9),
		s.node.IntAttr("spatial", 1))
	s.fill()
}

func lowerMaxPool(s *opScope) {
	s.wantInputs(1)
	if ap := s.node.StrAttr("auto_pad", "NOTSET"); ap != "NOTSET" {
		s.failf("auto_pad is not supported for MaxPool")
	}
	kernel := s.node.IntsAttr("kernel_shape")
	if len(s.node.Outputs()) == 1 {
		tmp := s.e.newTempID()
		s.prog().AddMaxPoolOp(s.out(0), tmp, s.in(0), kernel, s.strides(), s.pads(), s.node.CoverAll())
		s.fill()
		s.e.freeTagged(tmp)
		return
	}
	s.wantOutputs(3)
	if outs := s.node.Outputs(); len(outs) == 3 && !outs[1].IsNull() {
		s.failf("the second output of MaxPool must be null")
	}
	s.prog().AddMaxPoolOp(s.out(0), s.out(2), s.in(0), kernel, s.strides(), s.pads(), s.node.CoverAll())
	s.fill()
}

func lowerAveragePool(s *opScope) {
	s.wantInputs(1)
	if ap := s.node.StrAttr("auto_pad", "NOTSET"); ap != "NOTSET" {
		s.failf("auto_pad is not supported for AveragePool")
	}
	kernel := s.node.IntsAttr("kernel_shape")
	countIncludePad := s.node.IntAttr("count_include_pad", 0)
	if len(s.node.Outputs()) == 1 {
		tmp := s.e.newTempID()
		s.prog().AddAveragePoolOp(s.out(0), tmp, s.in(0), kernel, s.strides(), s.pads(), countIncludePad)
		s.fill()
		s.e.freeTagged(tmp)
		return
	}
	s.wantOutputs(2)
	s.prog().AddAveragePoolOp(s.out(0), s.out(1), s.in(0), kernel, s.strides(), s.pads(), countIncludePad)
	s.fill()
}
