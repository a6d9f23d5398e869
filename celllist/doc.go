// Package celllist implements the spatial hash pair traversal is built on:
// particles (plus their periodic images) are grouped into grid cells as
// singly-linked chains over a flat backing array, giving O(1) per-particle
// insertion and cache-friendly chain walks without per-cell slice
// allocation.
//
// CellList is a mutex-guarded struct with a thin constructor/accessor
// surface (New, Update) and package-private chain-manipulation helpers,
// adapted from adjacency chains over vertex IDs to adjacency chains over
// grid cells.
//
// Build (New) and in-place refresh (Update) share the same insertion
// routine; when the grid size is unchanged, Update resets fp/npcell only
// at the cells that were previously non-empty instead of reallocating
// them. Both then rebuild the compact non-empty cell list with one pass
// over every grid cell.
package celllist
