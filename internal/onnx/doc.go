// Package onnx holds the ONNX protobuf data structures consumed by the
// compiler and a minimal wire-format decoder for them.
//
// The decoder covers the subset of the ONNX schema the compiler needs:
// graphs, nodes, attributes (including nested TENSOR and GRAPH payloads
// for control-flow operators), initializers, and value_info entries.
// Serialization back to bytes is not provided; the compiler round-trips
// graphs at the struct level.
package onnx
