package graph

import (
	"fmt"

	"github.com/xcvm-ml/xcc/internal/onnx"
)

// Dtype represents the element type of a tensor value.
type Dtype int

// Supported element types.
const (
	DtypeUnknown Dtype = iota
	DtypeBool
	DtypeInt8
	DtypeInt16
	DtypeInt32
	DtypeInt64
	DtypeUint8
	DtypeFloat32
	DtypeFloat64
)

// SizeOf returns the byte width of one element, or 0 for unknown types.
func (d Dtype) SizeOf() int {
	switch d {
	case DtypeBool, DtypeInt8, DtypeUint8:
		return 1
	case DtypeInt16:
		return 2
	case DtypeInt32, DtypeFloat32:
		return 4
	case DtypeInt64, DtypeFloat64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether the type is a floating-point type.
func (d Dtype) IsFloat() bool {
	return d == DtypeFloat32 || d == DtypeFloat64
}

// String returns a human-readable name for the element type.
func (d Dtype) String() string {
	switch d {
	case DtypeBool:
		return "bool"
	case DtypeInt8:
		return "int8"
	case DtypeInt16:
		return "int16"
	case DtypeInt32:
		return "int32"
	case DtypeInt64:
		return "int64"
	case DtypeUint8:
		return "uint8"
	case DtypeFloat32:
		return "float32"
	case DtypeFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// DtypeFromONNX converts an ONNX TensorProto data type code.
// Unrecognized codes map to DtypeUnknown; callers that require a known
// element width must reject DtypeUnknown themselves.
func DtypeFromONNX(code int32) Dtype {
	switch code {
	case onnx.TensorProtoBool:
		return DtypeBool
	case onnx.TensorProtoInt8:
		return DtypeInt8
	case onnx.TensorProtoInt16:
		return DtypeInt16
	case onnx.TensorProtoInt32:
		return DtypeInt32
	case onnx.TensorProtoInt64:
		return DtypeInt64
	case onnx.TensorProtoUint8:
		return DtypeUint8
	case onnx.TensorProtoFloat:
		return DtypeFloat32
	case onnx.TensorProtoDouble:
		return DtypeFloat64
	default:
		return DtypeUnknown
	}
}

// ToONNX converts back to the ONNX TensorProto data type code.
func (d Dtype) ToONNX() int32 {
	switch d {
	case DtypeBool:
		return onnx.TensorProtoBool
	case DtypeInt8:
		return onnx.TensorProtoInt8
	case DtypeInt16:
		return onnx.TensorProtoInt16
	case DtypeInt32:
		return onnx.TensorProtoInt32
	case DtypeInt64:
		return onnx.TensorProtoInt64
	case DtypeUint8:
		return onnx.TensorProtoUint8
	case DtypeFloat32:
		return onnx.TensorProtoFloat
	case DtypeFloat64:
		return onnx.TensorProtoDouble
	default:
		return onnx.TensorProtoUndefined
	}
}

// dtypeError reports an element type the compiler cannot materialize.
func dtypeError(d Dtype) error {
	return fmt.Errorf("unknown element width for dtype %s", d)
}
