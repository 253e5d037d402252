// Package message defines the Gaussian message passed between a factor and
// an adjacent variable node. A message is either a proper Gaussian over the
// variable's dimension, or an empty sentinel (no information yet, or the
// factor is disabled / its last update degenerated to a singular matrix).
// Messages are immutable once produced for a given iteration.
package message
