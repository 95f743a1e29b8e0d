package graph

import (
	"fmt"
	"strings"

	"github.com/xcvm-ml/xcc/internal/onnx"
)

// TypeKind distinguishes tensors from the compiler-internal kinds.
type TypeKind int

// Type kinds.
const (
	// TypeTensor is an ordinary dense tensor.
	TypeTensor TypeKind = iota
	// TypeSequence is a sequence of tensors.
	TypeSequence
	// TypeOpaque carries compiler-private state between instructions,
	// e.g. the saved-state output of BatchNormalization.
	TypeOpaque
)

func (k TypeKind) String() string {
	switch k {
	case TypeTensor:
		return "Tensor"
	case TypeSequence:
		return "Sequence"
	case TypeOpaque:
		return "Opaque"
	default:
		return "???"
	}
}

// Type describes a value: kind, element type, and shape.
// A nil Dims with HasShape false means the shape is unknown.
type Type struct {
	Kind     TypeKind
	Dtype    Dtype
	Dims     []int64
	HasShape bool
}

// NewTensorType creates a tensor type with a known shape.
func NewTensorType(dtype Dtype, dims []int64) *Type {
	d := make([]int64, len(dims))
	copy(d, dims)
	return &Type{Kind: TypeTensor, Dtype: dtype, Dims: d, HasShape: true}
}

// UnknownType creates a tensor type with unknown element type and shape.
func UnknownType() *Type {
	return &Type{Kind: TypeTensor, Dtype: DtypeUnknown}
}

// OpaqueType creates an opaque type tag.
func OpaqueType() *Type {
	return &Type{Kind: TypeOpaque}
}

// SequenceType creates a sequence type.
func SequenceType() *Type {
	return &Type{Kind: TypeSequence}
}

// HasKnownShape reports whether the shape is fully known.
func (t *Type) HasKnownShape() bool {
	if !t.HasShape {
		return false
	}
	for _, d := range t.Dims {
		if d < 0 {
			return false
		}
	}
	return true
}

// NBytes returns the byte size of a value of this type, or -1 when the
// shape or element type is unknown.
func (t *Type) NBytes() int64 {
	if t.Kind != TypeTensor || !t.HasKnownShape() || t.Dtype.SizeOf() == 0 {
		return -1
	}
	n := int64(t.Dtype.SizeOf())
	for _, d := range t.Dims {
		n *= d
	}
	return n
}

// Clone returns a deep copy of the type.
func (t *Type) Clone() *Type {
	c := *t
	c.Dims = make([]int64, len(t.Dims))
	copy(c.Dims, t.Dims)
	return &c
}

// TypeFromProto converts an ONNX TypeProto. A nil or tensor-less proto
// yields an unknown type.
func TypeFromProto(proto *onnx.TypeProto) *Type {
	if proto == nil || proto.TensorType == nil {
		return UnknownType()
	}
	tt := proto.TensorType
	typ := &Type{Kind: TypeTensor, Dtype: DtypeFromONNX(tt.ElemType)}
	if tt.Shape != nil {
		typ.HasShape = true
		for _, dim := range tt.Shape.Dims {
			if dim.DimParam != "" {
				typ.Dims = append(typ.Dims, -1)
			} else {
				typ.Dims = append(typ.Dims, dim.DimValue)
			}
		}
	}
	return typ
}

// ToProto converts back to an ONNX TypeProto. Sequence and opaque kinds
// have no ONNX rendering and yield an empty proto.
func (t *Type) ToProto() *onnx.TypeProto {
	if t.Kind != TypeTensor {
		return &onnx.TypeProto{}
	}
	tt := &onnx.TensorTypeProto{ElemType: t.Dtype.ToONNX()}
	if t.HasShape {
		tt.Shape = &onnx.TensorShapeProto{}
		for _, d := range t.Dims {
			tt.Shape.Dims = append(tt.Shape.Dims, onnx.DimensionProto{DimValue: d})
		}
	}
	return &onnx.TypeProto{TensorType: tt}
}

func (t *Type) String() string {
	if t.Kind != TypeTensor {
		return t.Kind.String()
	}
	if !t.HasShape {
		return fmt.Sprintf("%s[?]", t.Dtype)
	}
	dims := make([]string, len(t.Dims))
	for i, d := range t.Dims {
		dims[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("%s[%s]", t.Dtype, strings.Join(dims, ","))
}
