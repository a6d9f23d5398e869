// Package cellindex converts between a grid cell's Cartesian coordinates
// and its linear (row-major) index, and enumerates the "forward" neighbor
// offsets a cell must visit so that pair traversal sees each unordered
// cell pair exactly once.
//
// What:
//
//   - Linear/Cartesian: row-major index <-> per-axis coordinate, generalized
//     to N dimensions (a 2D row-major grid index taken to arbitrary rank).
//   - ForwardOffsets: the fixed, lexicographic half-space of neighbor
//     offsets within lcell+1 steps per axis, including the zero offset
//     (self-cell) first.
//
// Why "forward" matters: the neighbor relation is antisymmetric by
// construction — if offset d is forward, -d is not (except the zero
// offset) — so iterating only forward offsets from every cell visits each
// unordered cell pair exactly once, with no bookkeeping set required.
package cellindex
