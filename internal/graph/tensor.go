package graph

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xcvm-ml/xcc/internal/onnx"
)

// Tensor holds initializer or constant data: an element type, a shape,
// and raw little-endian element storage.
type Tensor struct {
	name  string
	dtype Dtype
	dims  []int64
	data  []byte
}

// NewTensor creates a tensor from raw little-endian element data.
func NewTensor(name string, dtype Dtype, dims []int64, data []byte) (*Tensor, error) {
	if dtype.SizeOf() == 0 {
		return nil, dtypeError(dtype)
	}
	t := &Tensor{name: name, dtype: dtype, dims: append([]int64(nil), dims...), data: data}
	if want := t.NumElements() * int64(dtype.SizeOf()); int64(len(data)) != want {
		return nil, fmt.Errorf("tensor %s: have %d data bytes, want %d", name, len(data), want)
	}
	return t, nil
}

// NewInt64Tensor creates an int64 tensor from element values.
func NewInt64Tensor(name string, dims []int64, values []int64) *Tensor {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[8*i:], uint64(v))
	}
	t, _ := NewTensor(name, DtypeInt64, dims, data)
	return t
}

// NewFloat32Tensor creates a float32 tensor from element values.
func NewFloat32Tensor(name string, dims []int64, values []float32) *Tensor {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	t, _ := NewTensor(name, DtypeFloat32, dims, data)
	return t
}

// TensorFromProto converts an ONNX TensorProto, normalizing every legacy
// payload encoding into raw element storage.
func TensorFromProto(proto *onnx.TensorProto) (*Tensor, error) {
	dtype := DtypeFromONNX(proto.DataType)
	if dtype.SizeOf() == 0 {
		return nil, fmt.Errorf("tensor %s: %w", proto.Name, dtypeError(dtype))
	}

	var data []byte
	switch {
	case len(proto.RawData) > 0:
		data = append([]byte(nil), proto.RawData...)
	case len(proto.FloatData) > 0:
		data = make([]byte, 4*len(proto.FloatData))
		for i, v := range proto.FloatData {
			binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
		}
	case len(proto.DoubleData) > 0:
		data = make([]byte, 8*len(proto.DoubleData))
		for i, v := range proto.DoubleData {
			binary.LittleEndian.PutUint64(data[8*i:], math.Float64bits(v))
		}
	case len(proto.Int64Data) > 0:
		data = make([]byte, 8*len(proto.Int64Data))
		for i, v := range proto.Int64Data {
			binary.LittleEndian.PutUint64(data[8*i:], uint64(v))
		}
	case len(proto.Int32Data) > 0:
		// int32_data also carries the narrow integer and bool types.
		data = make([]byte, dtype.SizeOf()*len(proto.Int32Data))
		for i, v := range proto.Int32Data {
			putInt(data, dtype, int64(i), int64(v))
		}
	case len(proto.Uint64Data) > 0:
		data = make([]byte, 8*len(proto.Uint64Data))
		for i, v := range proto.Uint64Data {
			binary.LittleEndian.PutUint64(data[8*i:], v)
		}
	}

	return NewTensor(proto.Name, dtype, proto.Dims, data)
}

// Name returns the tensor name.
func (t *Tensor) Name() string { return t.name }

// Dtype returns the element type.
func (t *Tensor) Dtype() Dtype { return t.dtype }

// Dims returns the tensor shape.
func (t *Tensor) Dims() []int64 { return t.dims }

// NumElements returns the total element count.
func (t *Tensor) NumElements() int64 {
	n := int64(1)
	for _, d := range t.dims {
		n *= d
	}
	return n
}

// NBytes returns the byte size of the element storage.
func (t *Tensor) NBytes() int64 { return int64(len(t.data)) }

// FloatAt reads element i of a floating tensor widened to float64.
func (t *Tensor) FloatAt(i int64) float64 {
	switch t.dtype {
	case DtypeFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(t.data[4*i:])))
	case DtypeFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(t.data[8*i:]))
	default:
		panic(fmt.Sprintf("FloatAt on %s tensor", t.dtype))
	}
}

// IntAt reads element i of an integer or bool tensor widened to int64.
func (t *Tensor) IntAt(i int64) int64 {
	switch t.dtype.SizeOf() {
	case 1:
		if t.dtype == DtypeInt8 {
			return int64(int8(t.data[i]))
		}
		return int64(t.data[i])
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(t.data[2*i:])))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(t.data[4*i:])))
	case 8:
		return int64(binary.LittleEndian.Uint64(t.data[8*i:]))
	default:
		panic(fmt.Sprintf("IntAt on %s tensor", t.dtype))
	}
}

// ToProto converts back to an ONNX TensorProto with raw storage.
func (t *Tensor) ToProto() *onnx.TensorProto {
	return &onnx.TensorProto{
		Name:     t.name,
		DataType: t.dtype.ToONNX(),
		Dims:     append([]int64(nil), t.dims...),
		RawData:  append([]byte(nil), t.data...),
	}
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s, %s, dims=%v)", t.name, t.dtype, t.dims)
}

func putInt(data []byte, dtype Dtype, i, v int64) {
	switch dtype.SizeOf() {
	case 1:
		data[i] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(data[2*i:], uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(data[4*i:], uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(data[8*i:], uint64(v))
	}
}
