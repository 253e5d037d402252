// Package gaussian implements the canonical-form multivariate Gaussian used
// throughout the belief-propagation core: an information vector η and a
// precision matrix Λ, related to the moment form by Λ = Σ⁻¹, η = Λμ.
//
// All linear algebra is delegated to the matrix package (Dense storage,
// Add/Mul/Transpose, and LU-based Inverse); gaussian never re-implements a
// solver of its own. A zero-information Gaussian (η = 0, Λ = 0) is the
// identity element under Product and represents "no information yet".
package gaussian
