// Package sysclass classifies a particle system along two axes —
// overall size and per-cell occupancy — so callers (parallel, pairs) can
// pick tuning defaults (worker/batch counts, dense-pruning) without the
// caller having to hardcode thresholds themselves.
package sysclass
