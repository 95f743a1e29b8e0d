// Package compiler is the public entry point: it turns an ONNX model
// into an XCVM program. The implementation lives in the internal
// packages; this package re-exports the types callers need.
package compiler

import (
	"fmt"

	"github.com/xcvm-ml/xcc/internal/config"
	"github.com/xcvm-ml/xcc/internal/graph"
	"github.com/xcvm-ml/xcc/internal/onnx"
	"github.com/xcvm-ml/xcc/internal/xcvm"
)

// Re-exported types.
type (
	// Config is the compiler-wide option set.
	Config = config.Config
	// Graph is the in-memory graph IR.
	Graph = graph.Graph
	// Program is the emitted XCVM instruction list.
	Program = xcvm.Program
	// Instruction is one XCVM instruction.
	Instruction = xcvm.Instruction
	// Model is the parsed ONNX model.
	Model = onnx.ModelProto
	// Emitter drives one emission session.
	Emitter = xcvm.Emitter
)

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() *Config { return config.Default() }

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (*Config, error) { return config.Load(path) }

// ParseFile parses an ONNX model file.
func ParseFile(path string) (*Model, error) { return onnx.ParseFile(path) }

// Parse parses an ONNX model from bytes.
func Parse(data []byte) (*Model, error) { return onnx.Parse(data) }

// BuildGraph constructs the graph IR from a parsed model.
func BuildGraph(model *Model) (*Graph, error) {
	if model.Graph == nil {
		return nil, fmt.Errorf("model has no graph")
	}
	return graph.FromProto(model.Graph)
}

// Compile builds the graph IR from a model, schedules it, and emits the
// XCVM program.
func Compile(model *Model, cfg *Config) (*Program, error) {
	g, err := BuildGraph(model)
	if err != nil {
		return nil, err
	}
	return CompileGraph(g, cfg)
}

// CompileGraph schedules a graph and emits the XCVM program. Nodes that
// already carry a scheduling rank keep it.
func CompileGraph(g *Graph, cfg *Config) (*Program, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	graph.ScheduleComputationOrder(g)
	if cfg.DumpAfterScheduling {
		fmt.Fprint(cfg.LogWriter(), g.String())
	}
	if cfg.DumpSubgraphs {
		g.DumpSubGraphs(cfg.LogWriter(), 0)
	}
	return xcvm.Emit(g, cfg)
}

// CompileFile parses, builds, schedules, and emits in one call.
func CompileFile(path string, cfg *Config) (*Program, error) {
	model, err := onnx.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(model, cfg)
}
