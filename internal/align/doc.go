// Package align groups the units of two text sequences into aligned spans.
//
// The pipeline runs in fixed stages:
//
//	scoring.Builder  -> unit-by-unit similarity matrix (seed weights)
//	SelectSeeds      -> best column per row
//	ExpandGaps       -> candidate spans around every break in seed contiguity
//	Rescore          -> seeds and candidates scored as joined text (improvement weights)
//	Resolve          -> greedy best-first selection of non-overlapping spans
//	Project          -> spans back to the original unit slices
//
// Aligner wires the stages together; Sequences is the entry point for
// callers holding weights as strategy-name maps. Every stage is a pure
// function of its inputs, so identical inputs always produce identical
// groups in the same order.
package align
