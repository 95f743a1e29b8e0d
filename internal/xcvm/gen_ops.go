//go:build ignore

// gen_ops.go generates ops_gen.go, the per-mnemonic instruction builder
// methods, from the XCVM op schema below.
//
// Usage: go run gen_ops.go
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"log"
	"os"
	"strings"
)

// opSchema is one mnemonic and its typed operand signature, written as
// space-separated "name:kind" pairs. Kinds: r register, rs register
// list, i int, f float, il int list, fl float list, s string, sh shape,
// b bool (encoded as int 0/1).
type opSchema struct {
	name string
	sig  string
}

var schemas = []opSchema{
	// Housekeeping.
	{"In", "out:r name:s"},
	{"Out", "name:s in:r"},
	{"Free", "in:r"},
	{"Jmp", "pc:i"},
	{"JmpTrue", "cond:r pc:i"},
	{"JmpFalse", "cond:r pc:i"},

	// Unary.
	{"Identity", "out:r in:r"},
	{"Neg", "out:r in:r"},
	{"Reciprocal", "out:r in:r"},
	{"Exp", "out:r in:r"},
	{"Log", "out:r in:r"},
	{"Sqrt", "out:r in:r"},
	{"Tanh", "out:r in:r"},
	{"Abs", "out:r in:r"},
	{"Relu", "out:r in:r"},
	{"Floor", "out:r in:r"},
	{"Ceil", "out:r in:r"},
	{"Sigmoid", "out:r in:r"},
	{"Not", "out:r in:r"},

	// Binary.
	{"Add", "out:r a:r b:r"},
	{"Sub", "out:r a:r b:r"},
	{"Mul", "out:r a:r b:r"},
	{"Div", "out:r a:r b:r"},
	{"Pow", "out:r a:r b:r"},
	{"Equal", "out:r a:r b:r"},
	{"Greater", "out:r a:r b:r"},
	{"And", "out:r a:r b:r"},
	{"Or", "out:r a:r b:r"},
	{"Xor", "out:r a:r b:r"},
	{"GenericIs", "out:r a:r b:r"},
	{"GenericAdd", "out:r a:r b:r"},
	{"GenericAccumulateGrad", "out:r a:r b:r"},
	{"ReluGrad", "out:r a:r b:r"},
	{"MaxPoolGrad", "out:r a:r b:r"},
	{"AveragePoolGrad", "out:r a:r b:r"},
	{"SelectItem", "out:r a:r b:r"},
	{"LinearGradWeight", "out:r a:r b:r"},

	// Activations and layers.
	{"Dropout", "out:r mask:r in:r ratio:f"},
	{"Selu", "out:r in:r alpha:f gamma:f"},
	{"LeakyRelu", "out:r in:r alpha:f"},
	{"Elu", "out:r in:r alpha:f"},
	{"Linear", "out:r x:r w:r b:r nBatchAxes:i"},
	{"Conv", "out:r x:r w:r b:r strides:il pads:il"},
	{"ConvTranspose", "out:r x:r w:r b:r strides:il pads:il outputShape:il"},
	{"ConvTransposeWithDynamicShape", "out:r x:r w:r shape:r strides:il pads:il"},
	{"ConvGradWeight", "out:r w:r x:r gy:r strides:il pads:il"},
	{"RNN", "y:r hidden:r x:r w:r r:r b:r seqLens:r initialH:r hiddenSize:i direction:i"},
	{"GRU", "y:r hidden:r x:r w:r r:r b:r seqLens:r initialH:r hiddenSize:i linearBeforeReset:i direction:i"},
	{"LSTM", "y:r hidden:r cell:r ctx:r x:r w:r r:r b:r seqLens:r initialH:r initialC:r peephole:r hiddenSize:i direction:i"},
	{"LSTMGrad", "gx:r gw:r gr:r gb:r y:r gy:r"},
	{"BatchNormalization", "out:r ctx:r mean:r variance:r savedMean:r savedVar:r x:r scale:r bias:r inMean:r inVar:r epsilon:f momentum:f spatial:i"},
	{"BatchNormalizationGrad", "gx:r gscale:r gbias:r gy:r ctx:r"},
	{"LRN", "out:r unitScale:r in:r alpha:f beta:f bias:f size:i"},
	{"LRNGrad", "out:r x:r y:r gy:r unitScale:r alpha:f beta:f bias:f size:i"},

	// Shape manipulation.
	{"Shape", "out:r in:r"},
	{"Size", "out:r in:r"},
	{"Reshape", "out:r in:r shape:r"},
	{"Expand", "out:r in:r shape:r"},
	{"Squeeze", "out:r in:r axes:il"},
	{"Unsqueeze", "out:r in:r axes:il"},
	{"MatMul", "out:r a:r b:r"},
	{"Gemm", "out:r a:r b:r c:r alpha:f beta:f transA:i transB:i"},
	{"Pad", "out:r in:r pads:il value:f"},
	{"MaxPool", "out:r workspace:r in:r kernel:il strides:il pads:il coverAll:b"},
	{"AveragePool", "out:r workspace:r in:r kernel:il strides:il pads:il countIncludePad:i"},
	{"Softmax", "out:r in:r axis:i"},
	{"LogSoftmax", "out:r in:r axis:i"},
	{"ArgMax", "out:r in:r axis:i keepdims:i"},
	{"Hardmax", "out:r in:r axis:i"},
	{"ReduceMax", "out:r in:r axes:il keepdims:i"},
	{"ReduceSum", "out:r in:r axes:il keepdims:i"},
	{"ReduceSumSquare", "out:r in:r axes:il keepdims:i"},
	{"ReduceMean", "out:r in:r axes:il keepdims:i"},
	{"ReduceSumTo", "out:r in:r shape:r"},
	{"Cast", "out:r in:r to:i"},
	{"OneHot", "out:r indices:r depth:r values:r axis:i"},
	{"ConstantFill", "out:r input:r dtype:i extraShape:il shape:il value:f"},
	{"Slice", "out:r in:r axes:il starts:il ends:il"},
	{"DynamicSlice", "out:r in:r starts:r ends:r axes:r"},
	{"DynamicSliceGrad", "out:r gy:r shape:r starts:r ends:r axes:r"},
	{"Gather", "out:r in:r indices:r axis:i"},
	{"GatherGrad", "out:r gy:r indices:r shape:r axis:i"},
	{"SelectItemGrad", "out:r gy:r indices:r shape:r"},
	{"Concat", "out:r ins:rs axis:i"},
	{"Split", "outs:rs in:r axis:i split:il"},
	{"Clip", "out:r in:r max:f min:f"},
	{"Max", "out:r ins:rs"},
	{"Transpose", "out:r in:r perm:il"},

	// Constants.
	{"FloatScalarConstant", "out:r value:f dtype:i host:b"},
	{"IntScalarConstant", "out:r value:i dtype:i host:b"},
	{"FloatConstant", "out:r values:fl dtype:i shape:il host:b"},
	{"IntConstant", "out:r values:il dtype:i shape:il host:b"},
	{"NullConstant", "out:r"},

	// Sequences.
	{"SequenceCreate", "out:r"},
	{"SequenceSize", "out:r seq:r"},
	{"SequenceLengths", "out:r seq:r"},
	{"SequenceMove", "out:r seq:r"},
	{"SequenceCopy", "out:r seq:r"},
	{"SequenceAppend", "seq:r value:r"},
	{"SequencePop", "out:r seq:r"},
	{"SequenceLookup", "out:r seq:r index:r"},
	{"SequenceGetSlice", "out:r seq:r start:r end:r step:r"},
	{"SequenceLookupGrad", "out:r gy:r size:r index:r"},
	{"SequenceGetSliceGrad", "out:r gy:r size:r start:r end:r step:r"},
	{"SequenceStack", "out:r seq:r axis:i"},
	{"SequenceConcat", "out:r ctx:r seq:r axis:i"},
	{"SequenceSplitAxis", "out:r seq:r indices:r axis:i"},
	{"SequenceSeparate", "out:r seq:r axis:i"},
	{"SequenceUnpad", "out:r seq:r lengths:r"},
	{"SequencePad", "out:r seq:r length:i value:f"},
	{"SequenceRange", "out:r start:r stop:r step:r"},

	// Generic values.
	{"GenericLen", "out:r in:r"},
	{"GenericGetItem", "out:r in:r index:r"},
	{"GenericGetSlice", "out:r in:r start:r end:r step:r"},

	// Diagnostics and fusion calls.
	{"Print", "ins:rs"},
	{"TVM", "outs:rs ins:rs numOutputs:i dso:s funcName:s shape:sh"},
	{"ElementWiseNvrtc", "outs:rs ins:rs numOutputs:i code:s fusionGroup:i"},
}

var goType = map[string]string{
	"r":  "int",
	"rs": "[]int",
	"i":  "int64",
	"f":  "float64",
	"il": "[]int64",
	"fl": "[]float64",
	"s":  "string",
	"sh": "[]int64",
	"b":  "bool",
}

var ctor = map[string]string{
	"r":  "RegOperand",
	"rs": "RegsOperand",
	"i":  "IntOperand",
	"f":  "FloatOperand",
	"il": "IntsOperand",
	"fl": "FloatsOperand",
	"s":  "StringOperand",
	"sh": "ShapeOperand",
	"b":  "boolOperand",
}

func main() {
	var b bytes.Buffer
	fmt.Fprintln(&b, "// Code generated by gen_ops.go; DO NOT EDIT.")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "package xcvm")
	for _, op := range schemas {
		var params, args []string
		for _, field := range strings.Fields(op.sig) {
			name, kind, ok := strings.Cut(field, ":")
			if !ok {
				log.Fatalf("%s: bad field %q", op.name, field)
			}
			params = append(params, name+" "+goType[kind])
			args = append(args, ctor[kind]+"("+name+")")
		}
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "// Add%sOp appends a %s instruction.\n", op.name, op.name)
		fmt.Fprintf(&b, "func (p *Program) Add%sOp(%s) {\n", op.name, strings.Join(params, ", "))
		fmt.Fprintf(&b, "\tp.emit(%q, %s)\n", op.name, strings.Join(args, ", "))
		fmt.Fprintln(&b, "}")
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("ops_gen.go", src, 0o644); err != nil {
		log.Fatal(err)
	}
}
