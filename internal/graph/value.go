package graph

import (
	"fmt"
	"strings"
)

// ValueKind classifies a value slot. Kinds compose as a bitmask:
// KindNull combines with KindInput or KindOutput to denote an optional
// slot in that position. The zero kind is a plain temporary.
type ValueKind int

// Value kinds.
const (
	KindTemp   ValueKind = 0
	KindInput  ValueKind = 1
	KindOutput ValueKind = 2
	KindNull   ValueKind = 4
)

func (k ValueKind) String() string {
	if k == KindTemp {
		return "Temp"
	}
	var parts []string
	if k&KindInput != 0 {
		parts = append(parts, "Input")
	}
	if k&KindOutput != 0 {
		parts = append(parts, "Output")
	}
	if k&KindNull != 0 {
		parts = append(parts, "Null")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("???(%d)", int(k))
	}
	return strings.Join(parts, "|")
}

// Value is a named, typed slot in a graph. It tracks the node producing
// it and the nodes consuming it; both edges are maintained by the Graph
// mutators, never directly.
type Value struct {
	kind        ValueKind
	name        string
	typ         *Type
	doc         string
	initializer *Tensor
	producer    *Node
	users       []*Node
	grad        *Value
}

func newValue(name string, typ *Type, kind ValueKind) *Value {
	v := &Value{kind: kind, name: name, typ: typ}
	if name == "" {
		v.kind |= KindNull
	}
	return v
}

// Name returns the value name; empty for null slots.
func (v *Value) Name() string { return v.name }

// Kind returns the kind bitmask.
func (v *Value) Kind() ValueKind { return v.kind }

// IsTemp reports whether this is a plain temporary.
func (v *Value) IsTemp() bool { return v.kind == KindTemp }

// IsInput reports whether the value is a graph input.
func (v *Value) IsInput() bool { return v.kind&KindInput != 0 }

// IsOutput reports whether the value is a graph output.
func (v *Value) IsOutput() bool { return v.kind&KindOutput != 0 }

// IsNull reports whether the value is a null (absent) slot.
func (v *Value) IsNull() bool { return v.kind&KindNull != 0 }

// Type returns the value type.
func (v *Value) Type() *Type { return v.typ }

// SetType replaces the value type.
func (v *Value) SetType(t *Type) { v.typ = t }

// DocString returns the documentation string.
func (v *Value) DocString() string { return v.doc }

// Initializer returns the attached initializer tensor, or nil.
func (v *Value) Initializer() *Tensor { return v.initializer }

// ResetInitializer attaches an initializer. Only input values may carry
// initializer data.
func (v *Value) ResetInitializer(t *Tensor) error {
	if v.kind != KindInput {
		return fmt.Errorf("only input can have an initializer but %s is %s", v.name, v.kind)
	}
	v.initializer = t
	return nil
}

// Producer returns the node listing this value among its outputs, or nil.
func (v *Value) Producer() *Node { return v.producer }

// Users returns the nodes consuming this value, once per occurrence.
func (v *Value) Users() []*Node { return v.users }

// Grad returns the gradient peer value, or nil.
func (v *Value) Grad() *Value { return v.grad }

// SetGrad assigns the gradient peer. When this value's shape is known
// the peer's type is synchronized.
func (v *Value) SetGrad(grad *Value) {
	v.grad = grad
	if v.grad != nil && (v.typ.Kind != TypeTensor || v.typ.HasKnownShape()) {
		v.grad.SetType(v.typ.Clone())
	}
}

// NBytes returns the byte size of the value, or -1 when unknown.
func (v *Value) NBytes() int64 { return v.typ.NBytes() }

func (v *Value) setProducer(n *Node) { v.producer = n }

func (v *Value) addUser(n *Node) { v.users = append(v.users, n) }

func (v *Value) detachUser(n *Node) {
	for i, u := range v.users {
		if u == n {
			v.users = append(v.users[:i], v.users[i+1:]...)
			return
		}
	}
}

func (v *Value) String() string {
	return fmt.Sprintf("%s %s %s", v.kind, v.name, v.typ)
}
