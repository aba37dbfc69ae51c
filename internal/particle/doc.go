// Package particle holds the primitives the world and the compute backends
// share: vectors, particles, bounds, step parameters, the uniform spatial
// grid used for neighbor search and the normalized SPH kernels.
package particle
