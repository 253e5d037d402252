// Package radio models the inter-robot communication layer: each robot
// carries an Antenna with a fixed range, neighbor discovery is purely
// distance-based, and delivered messages are dropped independently at a
// configurable rate.
//
// Antenna discovery and loss are kept separate from factorgraph: this
// package only decides who talks to whom and whether a given message gets
// through; building or tearing down the matching inter-robot factors is
// the caller's job (see radio.Network.Reconcile).
package radio
