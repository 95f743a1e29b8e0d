package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcvm-ml/xcc/internal/onnx"
)

func addModel() *Model {
	vi := func(name string) onnx.ValueInfoProto {
		return onnx.ValueInfoProto{
			Name: name,
			Type: &onnx.TypeProto{
				TensorType: &onnx.TensorTypeProto{
					ElemType: onnx.TensorProtoFloat,
					Shape:    &onnx.TensorShapeProto{Dims: []onnx.DimensionProto{{DimValue: 2}}},
				},
			},
		}
	}
	return &Model{
		IRVersion: 7,
		Graph: &onnx.GraphProto{
			Name:    "add",
			Inputs:  []onnx.ValueInfoProto{vi("x"), vi("y")},
			Outputs: []onnx.ValueInfoProto{vi("z")},
			Nodes: []onnx.NodeProto{
				{Name: "add0", OpType: "Add", Inputs: []string{"x", "y"}, Outputs: []string{"z"}},
			},
		},
	}
}

func TestCompile(t *testing.T) {
	prog, err := Compile(addModel(), nil)
	require.NoError(t, err)
	require.NotZero(t, prog.Len())

	// In x, In y, Add, frees, Out z, free.
	ops := make([]string, 0, prog.Len())
	for i := range prog.Instructions {
		ops = append(ops, prog.Instructions[i].Op)
	}
	assert.Equal(t, "In", ops[0])
	assert.Contains(t, ops, "Add")

	var outNames []string
	for i := range prog.Instructions {
		if prog.Instructions[i].Op == "Out" {
			outNames = append(outNames, prog.Instructions[i].Inputs[0].Str)
		}
	}
	assert.Equal(t, []string{"z"}, outNames)
	assert.Equal(t, "Free", ops[len(ops)-1])
}

func TestCompileNoGraph(t *testing.T) {
	_, err := Compile(&Model{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no graph")
}

func TestCompileDumpSubgraphs(t *testing.T) {
	var log strings.Builder
	cfg := DefaultConfig()
	cfg.Log = &log
	cfg.DumpSubgraphs = true

	_, err := Compile(addModel(), cfg)
	require.NoError(t, err)
	assert.Contains(t, log.String(), "add")
}

func TestBuildGraph(t *testing.T) {
	g, err := BuildGraph(addModel())
	require.NoError(t, err)
	assert.Len(t, g.InputValues(), 2)
	assert.Len(t, g.OutputValues(), 1)
	assert.Len(t, g.Nodes(), 1)
}
