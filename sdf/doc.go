// Package sdf defines the environment collaborator interfaces consumed by
// obstacle and tracking factors: a signed-distance sampler and a
// nearest-point-on-path sampler, plus a grid/polyline-backed implementation
// of each for tests and headless operation.
//
// Producing production-quality signed-distance fields from arbitrary scene
// assets is out of scope; Grid only stores and interpolates whatever values
// it is constructed with.
package sdf
