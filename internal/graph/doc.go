// Package graph implements the in-memory IR the compiler operates on:
// typed values, operator nodes, and graphs with nested subgraphs for
// control flow.
//
// Values and nodes reference each other through producer and user edges.
// The edges are maintained exclusively by the Graph mutators (AddNode,
// DetachNode); detached nodes stay in storage but are ignored by every
// traversal.
package graph
