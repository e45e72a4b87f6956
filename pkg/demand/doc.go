// Package demand generates the logical traffic matrix.
//
// The logical topology is a complete directed graph without self-loops: for
// every ordered pair of distinct nodes there is one edge whose weight is the
// forecast traffic from source to target, drawn uniformly from [0, 1).
//
// # Determinism
//
// Demand values come from an explicit [XorShift] generator seeded with a
// 128-bit [Seed]. Values are drawn in a fixed order (outer loop over source,
// inner loop over target), so the same seed and node count always produce a
// bit-identical matrix:
//
//	seed, _ := demand.ParseSeed("1234")
//	rng, _ := demand.NewRand(seed)
//	logical, _ := demand.Generate(8, rng)
//
// No package-level generator state exists; callers own their generator.
package demand
