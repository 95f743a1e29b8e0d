package onnx

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// TestParseSimpleAdd tests parsing a simple Add operation.
func TestParseSimpleAdd(t *testing.T) {
	// Create minimal ONNX model: Z = X + Y
	data := buildSimpleAddModel()

	model, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Verify model structure
	if model.IRVersion != 7 {
		t.Errorf("Expected IR version 7, got %d", model.IRVersion)
	}

	if model.Graph == nil {
		t.Fatal("Graph is nil")
	}

	if len(model.Graph.Nodes) != 1 {
		t.Errorf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}

	node := model.Graph.Nodes[0]
	if node.OpType != "Add" {
		t.Errorf("Expected OpType 'Add', got '%s'", node.OpType)
	}

	if len(node.Inputs) != 2 {
		t.Errorf("Expected 2 inputs, got %d", len(node.Inputs))
	}

	if len(node.Outputs) != 1 {
		t.Errorf("Expected 1 output, got %d", len(node.Outputs))
	}
}

// TestParseWithInitializer tests parsing a model with weight tensors.
func TestParseWithInitializer(t *testing.T) {
	data := buildMatMulModel()

	model, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if model.Graph == nil {
		t.Fatal("Graph is nil")
	}

	if len(model.Graph.Initializers) != 1 {
		t.Errorf("Expected 1 initializer, got %d", len(model.Graph.Initializers))
	}

	init := model.Graph.Initializers[0]
	if init.Name != "W" {
		t.Errorf("Expected initializer name 'W', got '%s'", init.Name)
	}

	if init.DataType != TensorProtoFloat {
		t.Errorf("Expected data type float32, got %d", init.DataType)
	}

	if len(init.Dims) != 2 {
		t.Errorf("Expected 2 dims, got %d", len(init.Dims))
	}

	expectedSize := 4 * 4 * 4 // 4x4 matrix, float32 = 4 bytes
	if len(init.RawData) != expectedSize {
		t.Errorf("Expected raw data size %d, got %d", expectedSize, len(init.RawData))
	}
}

// TestParseInputOutput tests parsing input/output specifications.
func TestParseInputOutput(t *testing.T) {
	data := buildSimpleAddModel()

	model, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Inputs) != 2 {
		t.Errorf("Expected 2 inputs, got %d", len(model.Graph.Inputs))
	}

	if len(model.Graph.Outputs) != 1 {
		t.Errorf("Expected 1 output, got %d", len(model.Graph.Outputs))
	}

	input := model.Graph.Inputs[0]
	if input.Name != "X" {
		t.Errorf("Expected input name 'X', got '%s'", input.Name)
	}

	if input.Type == nil || input.Type.TensorType == nil {
		t.Fatal("Input type info is nil")
	}

	if input.Type.TensorType.ElemType != TensorProtoFloat {
		t.Errorf("Expected float32 type, got %d", input.Type.TensorType.ElemType)
	}
}

// TestParseAttributes tests parsing node attributes.
func TestParseAttributes(t *testing.T) {
	data := buildConvModel()

	model, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}

	node := model.Graph.Nodes[0]
	if node.OpType != "Conv" {
		t.Errorf("Expected OpType 'Conv', got '%s'", node.OpType)
	}

	var kernelShape *AttributeProto
	for i := range node.Attributes {
		if node.Attributes[i].Name == "kernel_shape" {
			kernelShape = &node.Attributes[i]
			break
		}
	}

	if kernelShape == nil {
		t.Fatal("kernel_shape attribute not found")
	}

	if len(kernelShape.Ints) != 2 {
		t.Errorf("Expected 2 ints in kernel_shape, got %d", len(kernelShape.Ints))
	}

	if kernelShape.Ints[0] != 3 || kernelShape.Ints[1] != 3 {
		t.Errorf("Expected kernel_shape [3, 3], got [%d, %d]",
			kernelShape.Ints[0], kernelShape.Ints[1])
	}
}

// TestParseSubgraphAttribute tests parsing a GRAPH attribute, the way
// Loop and If nodes carry their bodies.
func TestParseSubgraphAttribute(t *testing.T) {
	data := buildLoopModel()

	model, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}

	node := model.Graph.Nodes[0]
	if node.OpType != "Loop" {
		t.Errorf("Expected OpType 'Loop', got '%s'", node.OpType)
	}

	var body *GraphProto
	for i := range node.Attributes {
		if node.Attributes[i].Name == "body" {
			body = node.Attributes[i].G
			break
		}
	}

	if body == nil {
		t.Fatal("body attribute not found")
	}

	if body.Name != "loop_body" {
		t.Errorf("Expected body name 'loop_body', got '%s'", body.Name)
	}

	if len(body.Nodes) != 1 {
		t.Errorf("Expected 1 body node, got %d", len(body.Nodes))
	}
}

// TestParseTensorAttribute tests parsing a TENSOR attribute, the way
// Constant nodes carry their payload.
func TestParseTensorAttribute(t *testing.T) {
	data := buildConstantGraph()

	graph, err := ParseGraph(data)
	if err != nil {
		t.Fatalf("ParseGraph failed: %v", err)
	}

	if len(graph.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(graph.Nodes))
	}

	node := graph.Nodes[0]
	var value *TensorProto
	for i := range node.Attributes {
		if node.Attributes[i].Name == "value" {
			value = node.Attributes[i].T
			break
		}
	}

	if value == nil {
		t.Fatal("value attribute not found")
	}

	if value.DataType != TensorProtoInt64 {
		t.Errorf("Expected int64 tensor, got %d", value.DataType)
	}

	if len(value.RawData) != 8 {
		t.Errorf("Expected 8 raw bytes, got %d", len(value.RawData))
	}
}

// TestParseValueInfo tests parsing intermediate value_info entries.
func TestParseValueInfo(t *testing.T) {
	buf := &protoBuilder{}
	buf.startMessage()
	buf.writeTag(2, wireBytes)
	buf.writeBytes([]byte("g"))
	buf.writeTag(13, wireBytes)
	buf.writeBytes(buildValueInfo("hidden", TensorProtoFloat, []int64{4}))
	buf.endMessage()

	graph, err := ParseGraph(buf.data[4:])
	if err != nil {
		t.Fatalf("ParseGraph failed: %v", err)
	}

	if len(graph.ValueInfo) != 1 {
		t.Fatalf("Expected 1 value_info, got %d", len(graph.ValueInfo))
	}
	if graph.ValueInfo[0].Name != "hidden" {
		t.Errorf("Expected value_info name 'hidden', got '%s'", graph.ValueInfo[0].Name)
	}
}

// TestParseFile tests parsing from file.
func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.onnx")

	data := buildSimpleAddModel()
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	model, err := ParseFile(tmpFile)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if model.Graph == nil {
		t.Fatal("Graph is nil")
	}

	if len(model.Graph.Nodes) != 1 {
		t.Errorf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}
}

// TestParseInvalidFile tests error handling for non-existent file.
func TestParseInvalidFile(t *testing.T) {
	_, err := ParseFile("/nonexistent/file.onnx")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

// TestParseEmptyData tests error handling for empty data.
func TestParseEmptyData(t *testing.T) {
	_, err := Parse([]byte{})
	if err != nil {
		// Error is acceptable for empty data
		t.Logf("Empty data error (expected): %v", err)
	}
}

// Helper: buildSimpleAddModel creates a minimal ONNX model with Add operation.
func buildSimpleAddModel() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	// field 1: ir_version = 7
	buf.writeTag(1, wireVarint)
	buf.writeVarint(7)

	// field 8: opset_import
	buf.writeTag(8, wireBytes)
	opsetData := &protoBuilder{}
	opsetData.startMessage()
	opsetData.writeTag(1, wireBytes)
	opsetData.writeBytes([]byte(""))
	opsetData.writeTag(2, wireVarint)
	opsetData.writeVarint(13)
	opsetData.endMessage()
	buf.writeBytes(opsetData.data[4:])

	// field 7: graph
	buf.writeTag(7, wireBytes)
	buf.writeBytes(buildSimpleAddGraph())

	buf.endMessage()
	return buf.data[4:]
}

// buildSimpleAddGraph creates graph: Z = X + Y.
func buildSimpleAddGraph() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	// field 2: name
	buf.writeTag(2, wireBytes)
	buf.writeBytes([]byte("simple_add"))

	// field 1: node (Add)
	buf.writeTag(1, wireBytes)
	nodeData := &protoBuilder{}
	nodeData.startMessage()
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("X"))
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("Y"))
	nodeData.writeTag(2, wireBytes)
	nodeData.writeBytes([]byte("Z"))
	nodeData.writeTag(4, wireBytes)
	nodeData.writeBytes([]byte("Add"))
	nodeData.endMessage()
	buf.writeBytes(nodeData.data[4:])

	// field 11: inputs
	buf.writeTag(11, wireBytes)
	buf.writeBytes(buildValueInfo("X", TensorProtoFloat, []int64{-1, 784}))
	buf.writeTag(11, wireBytes)
	buf.writeBytes(buildValueInfo("Y", TensorProtoFloat, []int64{-1, 784}))

	// field 12: output Z
	buf.writeTag(12, wireBytes)
	buf.writeBytes(buildValueInfo("Z", TensorProtoFloat, []int64{-1, 784}))

	buf.endMessage()
	return buf.data[4:]
}

// buildMatMulModel creates a model with MatMul and weight initializer.
func buildMatMulModel() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(1, wireVarint)
	buf.writeVarint(7)

	buf.writeTag(8, wireBytes)
	opsetData := &protoBuilder{}
	opsetData.startMessage()
	opsetData.writeTag(1, wireBytes)
	opsetData.writeBytes([]byte(""))
	opsetData.writeTag(2, wireVarint)
	opsetData.writeVarint(13)
	opsetData.endMessage()
	buf.writeBytes(opsetData.data[4:])

	buf.writeTag(7, wireBytes)
	buf.writeBytes(buildMatMulGraph())

	buf.endMessage()
	return buf.data[4:]
}

// buildMatMulGraph creates graph: Y = MatMul(X, W).
func buildMatMulGraph() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(2, wireBytes)
	buf.writeBytes([]byte("matmul_graph"))

	buf.writeTag(1, wireBytes)
	nodeData := &protoBuilder{}
	nodeData.startMessage()
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("X"))
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("W"))
	nodeData.writeTag(2, wireBytes)
	nodeData.writeBytes([]byte("Y"))
	nodeData.writeTag(4, wireBytes)
	nodeData.writeBytes([]byte("MatMul"))
	nodeData.endMessage()
	buf.writeBytes(nodeData.data[4:])

	// initializer W (4x4 matrix)
	buf.writeTag(5, wireBytes)
	buf.writeBytes(buildTensorProto("W", TensorProtoFloat, []int64{4, 4}, make([]byte, 64)))

	buf.writeTag(11, wireBytes)
	buf.writeBytes(buildValueInfo("X", TensorProtoFloat, []int64{-1, 4}))

	// W must be declared as a graph input to take an initializer.
	buf.writeTag(11, wireBytes)
	buf.writeBytes(buildValueInfo("W", TensorProtoFloat, []int64{4, 4}))

	buf.writeTag(12, wireBytes)
	buf.writeBytes(buildValueInfo("Y", TensorProtoFloat, []int64{-1, 4}))

	buf.endMessage()
	return buf.data[4:]
}

// buildConvModel creates a model with Conv operation and attributes.
func buildConvModel() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(1, wireVarint)
	buf.writeVarint(7)

	buf.writeTag(7, wireBytes)
	buf.writeBytes(buildConvGraph())

	buf.endMessage()
	return buf.data[4:]
}

// buildConvGraph creates graph with Conv node.
func buildConvGraph() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(2, wireBytes)
	buf.writeBytes([]byte("conv_graph"))

	buf.writeTag(1, wireBytes)
	nodeData := &protoBuilder{}
	nodeData.startMessage()
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("X"))
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("W"))
	nodeData.writeTag(2, wireBytes)
	nodeData.writeBytes([]byte("Y"))
	nodeData.writeTag(4, wireBytes)
	nodeData.writeBytes([]byte("Conv"))
	// attribute: kernel_shape = [3, 3]
	nodeData.writeTag(5, wireBytes)
	attrData := &protoBuilder{}
	attrData.startMessage()
	attrData.writeTag(1, wireBytes)
	attrData.writeBytes([]byte("kernel_shape"))
	attrData.writeTag(20, wireVarint)
	attrData.writeVarint(int64(AttributeProtoInts))
	attrData.writeTag(8, wireBytes) // ints (field 8 in ONNX AttributeProto)
	intsData := &protoBuilder{}
	intsData.writeVarint(3)
	intsData.writeVarint(3)
	attrData.writeBytes(intsData.data)
	attrData.endMessage()
	nodeData.writeBytes(attrData.data[4:])
	nodeData.endMessage()
	buf.writeBytes(nodeData.data[4:])

	buf.endMessage()
	return buf.data[4:]
}

// buildLoopModel creates a model whose single node carries a subgraph.
func buildLoopModel() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(1, wireVarint)
	buf.writeVarint(7)

	buf.writeTag(7, wireBytes)
	graphBuf := &protoBuilder{}
	graphBuf.startMessage()
	graphBuf.writeTag(2, wireBytes)
	graphBuf.writeBytes([]byte("loop_graph"))

	graphBuf.writeTag(1, wireBytes)
	nodeData := &protoBuilder{}
	nodeData.startMessage()
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("trip"))
	nodeData.writeTag(2, wireBytes)
	nodeData.writeBytes([]byte("out"))
	nodeData.writeTag(4, wireBytes)
	nodeData.writeBytes([]byte("Loop"))
	// attribute: body = <graph>
	nodeData.writeTag(5, wireBytes)
	attrData := &protoBuilder{}
	attrData.startMessage()
	attrData.writeTag(1, wireBytes)
	attrData.writeBytes([]byte("body"))
	attrData.writeTag(20, wireVarint)
	attrData.writeVarint(int64(AttributeProtoGraph))
	attrData.writeTag(6, wireBytes) // g (field 6 in ONNX AttributeProto)
	attrData.writeBytes(buildLoopBodyGraph())
	attrData.endMessage()
	nodeData.writeBytes(attrData.data[4:])
	nodeData.endMessage()
	graphBuf.writeBytes(nodeData.data[4:])
	graphBuf.endMessage()
	buf.writeBytes(graphBuf.data[4:])

	buf.endMessage()
	return buf.data[4:]
}

// buildLoopBodyGraph creates the nested loop body: s_out = Identity(s).
func buildLoopBodyGraph() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(2, wireBytes)
	buf.writeBytes([]byte("loop_body"))

	buf.writeTag(1, wireBytes)
	nodeData := &protoBuilder{}
	nodeData.startMessage()
	nodeData.writeTag(1, wireBytes)
	nodeData.writeBytes([]byte("s"))
	nodeData.writeTag(2, wireBytes)
	nodeData.writeBytes([]byte("s_out"))
	nodeData.writeTag(4, wireBytes)
	nodeData.writeBytes([]byte("Identity"))
	nodeData.endMessage()
	buf.writeBytes(nodeData.data[4:])

	buf.writeTag(11, wireBytes)
	buf.writeBytes(buildValueInfo("s", TensorProtoInt64, []int64{1}))
	buf.writeTag(12, wireBytes)
	buf.writeBytes(buildValueInfo("s_out", TensorProtoInt64, []int64{1}))

	buf.endMessage()
	return buf.data[4:]
}

// buildConstantGraph creates a graph with one Constant node.
func buildConstantGraph() []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(2, wireBytes)
	buf.writeBytes([]byte("const_graph"))

	buf.writeTag(1, wireBytes)
	nodeData := &protoBuilder{}
	nodeData.startMessage()
	nodeData.writeTag(2, wireBytes)
	nodeData.writeBytes([]byte("c"))
	nodeData.writeTag(4, wireBytes)
	nodeData.writeBytes([]byte("Constant"))
	// attribute: value = int64 scalar 42
	nodeData.writeTag(5, wireBytes)
	attrData := &protoBuilder{}
	attrData.startMessage()
	attrData.writeTag(1, wireBytes)
	attrData.writeBytes([]byte("value"))
	attrData.writeTag(20, wireVarint)
	attrData.writeVarint(int64(AttributeProtoTensor))
	attrData.writeTag(5, wireBytes) // t (field 5 in ONNX AttributeProto)
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, 42)
	attrData.writeBytes(buildTensorProto("", TensorProtoInt64, nil, raw))
	attrData.endMessage()
	nodeData.writeBytes(attrData.data[4:])
	nodeData.endMessage()
	buf.writeBytes(nodeData.data[4:])

	buf.writeTag(12, wireBytes)
	buf.writeBytes(buildValueInfo("c", TensorProtoInt64, nil))

	buf.endMessage()
	return buf.data[4:]
}

// buildValueInfo creates ValueInfoProto.
func buildValueInfo(name string, dtype int32, shape []int64) []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	buf.writeTag(1, wireBytes)
	buf.writeBytes([]byte(name))

	buf.writeTag(2, wireBytes)
	typeData := &protoBuilder{}
	typeData.startMessage()
	typeData.writeTag(1, wireBytes)
	tensorTypeData := &protoBuilder{}
	tensorTypeData.startMessage()
	tensorTypeData.writeTag(1, wireVarint)
	tensorTypeData.writeVarint(int64(dtype))
	tensorTypeData.writeTag(2, wireBytes)
	shapeData := &protoBuilder{}
	shapeData.startMessage()
	for _, dim := range shape {
		shapeData.writeTag(1, wireBytes)
		dimData := &protoBuilder{}
		dimData.startMessage()
		if dim > 0 {
			dimData.writeTag(1, wireVarint)
			dimData.writeVarint(dim)
		} else {
			// dynamic dimension
			dimData.writeTag(2, wireBytes)
			dimData.writeBytes([]byte("batch"))
		}
		dimData.endMessage()
		shapeData.writeBytes(dimData.data[4:])
	}
	shapeData.endMessage()
	tensorTypeData.writeBytes(shapeData.data[4:])
	tensorTypeData.endMessage()
	typeData.writeBytes(tensorTypeData.data[4:])
	typeData.endMessage()
	buf.writeBytes(typeData.data[4:])

	buf.endMessage()
	return buf.data[4:]
}

// buildTensorProto creates TensorProto.
func buildTensorProto(name string, dtype int32, dims []int64, rawData []byte) []byte {
	buf := &protoBuilder{}
	buf.startMessage()

	for _, dim := range dims {
		buf.writeTag(1, wireVarint)
		buf.writeVarint(dim)
	}

	buf.writeTag(2, wireVarint)
	buf.writeVarint(int64(dtype))

	buf.writeTag(8, wireBytes)
	buf.writeBytes([]byte(name))

	buf.writeTag(9, wireBytes)
	buf.writeBytes(rawData)

	buf.endMessage()
	return buf.data[4:]
}

// protoBuilder helps construct protobuf messages.
type protoBuilder struct {
	data []byte
}

func (b *protoBuilder) startMessage() {
	// Reserve space for length prefix
	b.data = append(b.data, 0, 0, 0, 0)
}

func (b *protoBuilder) endMessage() {
	// Update length prefix
	length := len(b.data) - 4
	var lenBuf [4]byte
	n := binary.PutVarint(lenBuf[:], int64(length))
	copy(b.data[:n], lenBuf[:n])
}

func (b *protoBuilder) writeTag(fieldNum, wireType int) {
	tag := (fieldNum << 3) | wireType
	b.writeVarint(int64(tag))
}

func (b *protoBuilder) writeVarint(v int64) {
	for v >= 0x80 {
		b.data = append(b.data, byte(v)|0x80)
		v >>= 7
	}
	b.data = append(b.data, byte(v))
}

func (b *protoBuilder) writeBytes(data []byte) {
	b.writeVarint(int64(len(data)))
	b.data = append(b.data, data...)
}
