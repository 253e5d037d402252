// Package matrix defines the shared Matrix interface and its sentinel
// errors; concrete storage and kernels live in impl_*.go.
package matrix
