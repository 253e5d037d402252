// Package matrix provides dense matrix storage and the small set of
// linear-algebra kernels belief propagation needs: construction,
// element-wise arithmetic, products, transposition, LU decomposition, and
// inversion.
//
// Matrices are row-major, backed by a flat []float64 slice for cache-friendly
// traversal. Fast paths specialize on *Dense; other Matrix implementations
// fall back to the interface-level loops.
package matrix
