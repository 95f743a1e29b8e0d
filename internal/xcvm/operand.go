package xcvm

import (
	"fmt"
	"strings"
)

// OperandKind tags the payload of an instruction operand.
type OperandKind int

// Operand kinds.
const (
	OperandInt OperandKind = iota
	OperandFloat
	OperandInts
	OperandFloats
	OperandString
	OperandShape
	OperandRegister
	OperandRegisters
)

// Operand is a tagged union over the operand payloads an instruction can
// carry. Register references are positive integers; -1 denotes an absent
// optional slot. Jump targets are absolute instruction indices stored in
// an Int operand.
type Operand struct {
	Kind   OperandKind
	Int    int64
	Float  float64
	Ints   []int64
	Floats []float64
	Str    string
	Shape  []int64
	Reg    int
	Regs   []int
}

// IntOperand creates an integer operand.
func IntOperand(v int64) Operand { return Operand{Kind: OperandInt, Int: v} }

// FloatOperand creates a float operand.
func FloatOperand(v float64) Operand { return Operand{Kind: OperandFloat, Float: v} }

// IntsOperand creates an integer-list operand.
func IntsOperand(v []int64) Operand {
	return Operand{Kind: OperandInts, Ints: append([]int64(nil), v...)}
}

// FloatsOperand creates a float-list operand.
func FloatsOperand(v []float64) Operand {
	return Operand{Kind: OperandFloats, Floats: append([]float64(nil), v...)}
}

// StringOperand creates a string operand.
func StringOperand(v string) Operand { return Operand{Kind: OperandString, Str: v} }

// ShapeOperand creates a shape operand.
func ShapeOperand(v []int64) Operand {
	return Operand{Kind: OperandShape, Shape: append([]int64(nil), v...)}
}

// RegOperand creates a register reference operand.
func RegOperand(id int) Operand { return Operand{Kind: OperandRegister, Reg: id} }

// RegsOperand creates a register-list operand.
func RegsOperand(ids []int) Operand {
	return Operand{Kind: OperandRegisters, Regs: append([]int(nil), ids...)}
}

func boolOperand(v bool) Operand {
	if v {
		return IntOperand(1)
	}
	return IntOperand(0)
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandInt:
		return fmt.Sprint(o.Int)
	case OperandFloat:
		return fmt.Sprint(o.Float)
	case OperandInts:
		return intsString(o.Ints)
	case OperandFloats:
		parts := make([]string, len(o.Floats))
		for i, f := range o.Floats {
			parts[i] = fmt.Sprint(f)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case OperandString:
		return fmt.Sprintf("%q", o.Str)
	case OperandShape:
		return "shape" + intsString(o.Shape)
	case OperandRegister:
		if o.Reg < 0 {
			return "$-"
		}
		return fmt.Sprintf("$%d", o.Reg)
	case OperandRegisters:
		parts := make([]string, len(o.Regs))
		for i, r := range o.Regs {
			parts[i] = fmt.Sprintf("$%d", r)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return "???"
	}
}

func intsString(v []int64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
