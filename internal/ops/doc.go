// Package ops implements the operator dispatch table shared by graph node
// behaviours and the expression evaluator.
//
// Binary semantics are registered per (operator, left kind, right kind)
// pair and unary semantics per (operator, kind), so independently-defined
// kinds can add entries without touching existing ones. Every registered
// implementation is responsible for combining provenance into its result,
// and the numeric leaf kernels compute nominal value, first-order
// uncertainty and DQ bits together so no channel drifts independently.
package ops
