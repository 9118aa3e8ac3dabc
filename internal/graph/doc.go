// Package graph implements the node instances, their connections, and the
// readiness/execution/propagation algorithm.
//
// Execution is single-threaded and cooperative: RunFrom performs nodes
// synchronously, each at most once per pass, and never before the node's
// currently-resolvable predecessors in the same pass. Connections are
// validated (kind compatibility and acyclicity) when they are made, not at
// run time. Behaviour faults are recorded per node and never halt a pass.
package graph
