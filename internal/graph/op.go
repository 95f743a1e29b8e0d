package graph

// OpType identifies an operator. The set covers the ONNX operators the
// compiler lowers plus the private Onikux extension operators used for
// gradients, sequences, fusion markers, and diagnostics.
type OpType string

// ONNX operators.
const (
	OpAbs                OpType = "Abs"
	OpAdd                OpType = "Add"
	OpAnd                OpType = "And"
	OpArgMax             OpType = "ArgMax"
	OpAveragePool        OpType = "AveragePool"
	OpBatchNormalization OpType = "BatchNormalization"
	OpCast               OpType = "Cast"
	OpCeil               OpType = "Ceil"
	OpClip               OpType = "Clip"
	OpConcat             OpType = "Concat"
	OpConstant           OpType = "Constant"
	OpConstantFill       OpType = "ConstantFill"
	OpConv               OpType = "Conv"
	OpConvTranspose      OpType = "ConvTranspose"
	OpDiv                OpType = "Div"
	OpDropout            OpType = "Dropout"
	OpDynamicSlice       OpType = "DynamicSlice"
	OpElu                OpType = "Elu"
	OpEqual              OpType = "Equal"
	OpExp                OpType = "Exp"
	OpExpand             OpType = "Expand"
	OpFloor              OpType = "Floor"
	OpGRU                OpType = "GRU"
	OpGather             OpType = "Gather"
	OpGemm               OpType = "Gemm"
	OpGreater            OpType = "Greater"
	OpHardmax            OpType = "Hardmax"
	OpIdentity           OpType = "Identity"
	OpIf                 OpType = "If"
	OpLRN                OpType = "LRN"
	OpLSTM               OpType = "LSTM"
	OpLeakyRelu          OpType = "LeakyRelu"
	OpLog                OpType = "Log"
	OpLogSoftmax         OpType = "LogSoftmax"
	OpLoop               OpType = "Loop"
	OpMatMul             OpType = "MatMul"
	OpMax                OpType = "Max"
	OpMaxPool            OpType = "MaxPool"
	OpMul                OpType = "Mul"
	OpNeg                OpType = "Neg"
	OpNot                OpType = "Not"
	OpOneHot             OpType = "OneHot"
	OpOr                 OpType = "Or"
	OpPad                OpType = "Pad"
	OpPow                OpType = "Pow"
	OpRNN                OpType = "RNN"
	OpReciprocal         OpType = "Reciprocal"
	OpReduceMax          OpType = "ReduceMax"
	OpReduceMean         OpType = "ReduceMean"
	OpReduceSum          OpType = "ReduceSum"
	OpReduceSumSquare    OpType = "ReduceSumSquare"
	OpRelu               OpType = "Relu"
	OpReshape            OpType = "Reshape"
	OpSelu               OpType = "Selu"
	OpShape              OpType = "Shape"
	OpSigmoid            OpType = "Sigmoid"
	OpSize               OpType = "Size"
	OpSlice              OpType = "Slice"
	OpSoftmax            OpType = "Softmax"
	OpSplit              OpType = "Split"
	OpSqrt               OpType = "Sqrt"
	OpSqueeze            OpType = "Squeeze"
	OpSub                OpType = "Sub"
	OpTanh               OpType = "Tanh"
	OpTranspose          OpType = "Transpose"
	OpUnsqueeze          OpType = "Unsqueeze"
	OpXor                OpType = "Xor"
)

// Onikux extension operators.
const (
	OpOnikuxAveragePoolGrad                     OpType = "OnikuxAveragePoolGrad"
	OpOnikuxBackpropStackPush                   OpType = "OnikuxBackpropStackPush"
	OpOnikuxBatchNormalizationGrad              OpType = "OnikuxBatchNormalizationGrad"
	OpOnikuxConvGradWeight                      OpType = "OnikuxConvGradWeight"
	OpOnikuxConvTransposeWithDynamicOutputShape OpType = "OnikuxConvTransposeWithDynamicOutputShape"
	OpOnikuxDynamicSliceGrad                    OpType = "OnikuxDynamicSliceGrad"
	OpOnikuxFusionGroup                         OpType = "OnikuxFusionGroup"
	OpOnikuxGatherGrad                          OpType = "OnikuxGatherGrad"
	OpOnikuxGenericAccumulateGrad               OpType = "OnikuxGenericAccumulateGrad"
	OpOnikuxGenericAdd                          OpType = "OnikuxGenericAdd"
	OpOnikuxGenericGetItem                      OpType = "OnikuxGenericGetItem"
	OpOnikuxGenericGetSlice                     OpType = "OnikuxGenericGetSlice"
	OpOnikuxGenericIs                           OpType = "OnikuxGenericIs"
	OpOnikuxGenericLen                          OpType = "OnikuxGenericLen"
	OpOnikuxLRNGrad                             OpType = "OnikuxLRNGrad"
	OpOnikuxLSTMGrad                            OpType = "OnikuxLSTMGrad"
	OpOnikuxLinear                              OpType = "OnikuxLinear"
	OpOnikuxLinearGradWeight                    OpType = "OnikuxLinearGradWeight"
	OpOnikuxMaxPoolGrad                         OpType = "OnikuxMaxPoolGrad"
	OpOnikuxNullConstant                        OpType = "OnikuxNullConstant"
	OpOnikuxPrint                               OpType = "OnikuxPrint"
	OpOnikuxReduceSumTo                         OpType = "OnikuxReduceSumTo"
	OpOnikuxReluGrad                            OpType = "OnikuxReluGrad"
	OpOnikuxSelectItem                          OpType = "OnikuxSelectItem"
	OpOnikuxSelectItemGrad                      OpType = "OnikuxSelectItemGrad"
	OpOnikuxSequenceAppend                      OpType = "OnikuxSequenceAppend"
	OpOnikuxSequenceConcat                      OpType = "OnikuxSequenceConcat"
	OpOnikuxSequenceConstants                   OpType = "OnikuxSequenceConstants"
	OpOnikuxSequenceCreate                      OpType = "OnikuxSequenceCreate"
	OpOnikuxSequenceGetSlice                    OpType = "OnikuxSequenceGetSlice"
	OpOnikuxSequenceGetSliceGrad                OpType = "OnikuxSequenceGetSliceGrad"
	OpOnikuxSequenceLengths                     OpType = "OnikuxSequenceLengths"
	OpOnikuxSequenceLookup                      OpType = "OnikuxSequenceLookup"
	OpOnikuxSequenceLookupGrad                  OpType = "OnikuxSequenceLookupGrad"
	OpOnikuxSequencePad                         OpType = "OnikuxSequencePad"
	OpOnikuxSequencePop                         OpType = "OnikuxSequencePop"
	OpOnikuxSequenceRange                       OpType = "OnikuxSequenceRange"
	OpOnikuxSequenceSeparate                    OpType = "OnikuxSequenceSeparate"
	OpOnikuxSequenceSize                        OpType = "OnikuxSequenceSize"
	OpOnikuxSequenceSplitAxis                   OpType = "OnikuxSequenceSplitAxis"
	OpOnikuxSequenceStack                       OpType = "OnikuxSequenceStack"
	OpOnikuxSequenceUnpad                       OpType = "OnikuxSequenceUnpad"
)
