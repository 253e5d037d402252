// Package factorgraph implements the per-robot factor graph: variable
// nodes holding a Gaussian belief over a future planar state, factor nodes
// encoding dynamics/obstacle/inter-robot/tracking constraints, and the
// internal/external Gaussian-belief-propagation sweeps that pass messages
// between them.
//
// A FactorGraph owns its variables and factors by value and hands out
// small integer handles (VariableID, FactorID) that stay valid across
// mutation — the graph is inherently cyclic (factors reference variables,
// variables' inboxes reference factors), so an arena-of-nodes keyed by
// handles replaces pointer cycles.
//
// Every variable in this system has the same fixed dimension, VariableDim
// = 4: planar position and velocity (x, y, ẋ, ẏ).
package factorgraph

// VariableDim is the fixed dimension of every variable node's state: planar
// position and velocity (x, y, ẋ, ẏ).
const VariableDim = 4
