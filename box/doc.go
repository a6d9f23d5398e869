// Package box represents the simulation cell geometry a CellList is built
// against: the unit-cell lattice matrix (diagonal for orthorhombic cells,
// general for triclinic), the cutoff-derived grid subdivision, and the
// periodic image translations needed to cover every point within cutoff of
// the unit cell.
//
// A Box is immutable once constructed — NewOrtho/New validate their inputs
// and precompute everything CellList needs (cell counts, image ranges, and
// the unit cell's inverse for triclinic wrapping) so that Wrap and CellOf
// are allocation-light, branch-free hot-path calls.
//
// Construction follows the usual functional-options shape:
// New/NewOrtho(unitCell, cutoff, opts...) with WithLCell overriding the
// default subdivision factor.
package box
