// Package neighborlist is the top-level convenience API: given raw
// positions, a box, and a cutoff, Build wires together celllist.New,
// sysclass.Classify, and pairs.WalkSingle (optionally through parallel.RunSingle
// for larger systems) into a single call returning the list of qualifying
// pairs. It is the front door most callers use instead of composing the
// lower packages by hand.
package neighborlist
