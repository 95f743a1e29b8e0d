// Package xcvm models XCVM programs and lowers graph IR into them.
//
// A Program is a flat instruction list with register operands. The
// per-mnemonic builder methods in ops_gen.go are generated from the op
// schema in gen_ops.go; regenerate with go generate after editing the
// schema.
//
// The Emitter walks a scheduled graph in computation order, assigns
// register ids to values, lowers each node through a dispatch table, and
// expands If, Loop, and fusion-group nodes into jump-threaded bytecode
// with scoped register lifetimes.
package xcvm

//go:generate go run gen_ops.go
