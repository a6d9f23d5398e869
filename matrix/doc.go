// Package matrix offers a small dense matrix type used to represent
// lattice (unit-cell) matrices: flat row-major storage, O(1) At/Set, and
// Clone. The companion ops subpackage layers LU decomposition and matrix
// inversion on top, which box uses once per construction to invert a
// triclinic unit cell for coordinate wrapping.
package matrix
