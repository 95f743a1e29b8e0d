package xcvm

import (
	"fmt"

	"github.com/xcvm-ml/xcc/internal/graph"
)

// emitConstantValue materializes one tensor into a register. Floating
// tensors widen to float64 on the way in; integer and bool tensors widen
// to int64. Scalar integer constants always live on the host; vector
// integer constants are host-resident only for int64 data.
func (e *Emitter) emitConstantValue(node *graph.Node, t *graph.Tensor, out int, host bool) error {
	dtype := t.Dtype()
	shape := make([]int64, 0, len(t.Dims()))
	for _, d := range t.Dims() {
		if d < 0 || d >= 1<<32 {
			return fmt.Errorf("%s: bad constant dimension %d", node, d)
		}
		shape = append(shape, d)
	}
	dtypeCode := int64(dtype.ToONNX())

	if dtype.IsFloat() {
		values := make([]float64, t.NumElements())
		for i := range values {
			values[i] = t.FloatAt(int64(i))
		}
		if len(shape) == 0 {
			e.prog.AddFloatScalarConstantOp(out, values[0], dtypeCode, host)
		} else {
			e.prog.AddFloatConstantOp(out, values, dtypeCode, shape, host)
		}
	} else {
		values := make([]int64, t.NumElements())
		for i := range values {
			values[i] = t.IntAt(int64(i))
		}
		if len(shape) == 0 {
			e.prog.AddIntScalarConstantOp(out, values[0], dtypeCode, true)
		} else {
			e.prog.AddIntConstantOp(out, values, dtypeCode, shape, dtype == graph.DtypeInt64)
		}
	}
	e.fillOpInfo(node, node.String())
	return nil
}

// emitConstant lowers a Constant node from its value tensor attribute.
func (e *Emitter) emitConstant(node *graph.Node) error {
	if len(node.Outputs()) != 1 {
		return fmt.Errorf("%s: want 1 output, have %d", node, len(node.Outputs()))
	}
	t := node.TensorAttr("value")
	if t == nil {
		return fmt.Errorf("%s: Constant without a value tensor", node)
	}
	out, err := e.ValueID(node.Outputs()[0])
	if err != nil {
		return err
	}
	return e.emitConstantValue(node, t, out, node.Host())
}

// emitConstantSequence materializes each tensor into a scratch register,
// appends it to a fresh sequence, and releases the scratch register.
func (e *Emitter) emitConstantSequence(node *graph.Node) error {
	if len(node.Outputs()) != 1 {
		return fmt.Errorf("%s: want 1 output, have %d", node, len(node.Outputs()))
	}
	var constIDs []int
	for _, t := range node.TensorsAttr("value") {
		id := e.newTempID()
		if err := e.emitConstantValue(node, t, id, false); err != nil {
			return err
		}
		constIDs = append(constIDs, id)
	}

	out, err := e.ValueID(node.Outputs()[0])
	if err != nil {
		return err
	}
	e.prog.AddSequenceCreateOp(out)
	e.fillOpInfo(node, node.String())
	for _, id := range constIDs {
		e.prog.AddSequenceAppendOp(out, id)
		e.fillOpInfo(node, node.String())
		e.freeTagged(id)
	}
	return nil
}
