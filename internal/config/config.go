// Package config holds the compiler-wide option set. Options are
// threaded through an explicit *Config rather than process globals; one
// Config serves one compilation pipeline.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects every pipeline and backend option the compiler
// recognizes. The zero value disables everything; use Default for a
// Config with a usable log writer.
type Config struct {
	// CompilerLog emits diagnostic prints during compilation.
	CompilerLog bool `yaml:"compiler_log"`
	// Permissive relaxes certain conformance checks.
	Permissive bool `yaml:"permissive"`

	// Pipeline stage toggles.
	SkipInference                bool `yaml:"skip_inference"`
	ReplaceConstant              bool `yaml:"replace_constant"`
	ModifyPoolWithImbalancedPads bool `yaml:"modify_pool_with_imbalanced_pads"`
	FuseOperations               bool `yaml:"fuse_operations"`
	ReuseTVMCode                 bool `yaml:"reuse_tvm_code"`

	// RecomputeRelu selects the Relu rematerialization policy.
	RecomputeRelu int `yaml:"recompute_relu"`

	// Backend selection.
	UseCUDA  bool `yaml:"use_cuda"`
	UseNVRTC bool `yaml:"use_nvrtc"`
	UseTVM   bool `yaml:"use_tvm"`

	// Backend I/O paths.
	BackendName        string `yaml:"backend_name"`
	AutoTVMLog         string `yaml:"autotvm_log"`
	DumpAutoTVMTaskDir string `yaml:"dump_autotvm_task_dir"`

	// Diagnostic dumps.
	DumpAfterInference      bool `yaml:"dump_after_inference"`
	DumpAfterSimplification bool `yaml:"dump_after_simplification"`
	DumpAfterGradient       bool `yaml:"dump_after_gradient"`
	DumpAfterFusion         bool `yaml:"dump_after_fusion"`
	DumpAfterScheduling     bool `yaml:"dump_after_scheduling"`
	DumpSubgraphs           bool `yaml:"dump_subgraphs"`

	// Log receives diagnostic output; defaults to os.Stderr.
	Log io.Writer `yaml:"-"`
}

// Default returns a Config with defaults applied.
func Default() *Config {
	return &Config{Log: os.Stderr}
}

// FromYAML parses a Config from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Load reads a Config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return FromYAML(data)
}

// LogWriter returns the diagnostic writer, falling back to os.Stderr.
func (c *Config) LogWriter() io.Writer {
	if c.Log != nil {
		return c.Log
	}
	return os.Stderr
}

// Logf writes one diagnostic line when CompilerLog is enabled.
func (c *Config) Logf(format string, args ...any) {
	if !c.CompilerLog {
		return
	}
	fmt.Fprintf(c.LogWriter(), format+"\n", args...)
}
