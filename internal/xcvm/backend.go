package xcvm

import "github.com/xcvm-ml/xcc/internal/graph"

// TVMBuilder compiles a fusion-group body into a shared object the VM
// loads at run time. Implementations live outside the emitter.
type TVMBuilder interface {
	// Build returns the path of the compiled shared object and the name
	// of its entry point.
	Build(nodes []*graph.Node, fusionGroupID int64, inputs, outputs []*graph.Value) (dsoPath, funcName string, err error)
}

// NVRTCBuilder generates CUDA source for an element-wise fusion group.
// The VM compiles the source with NVRTC when the instruction first runs.
type NVRTCBuilder interface {
	Build(nodes []*graph.Node, fusionGroupID int64, inputs, outputs []*graph.Value) (source string, err error)
}
