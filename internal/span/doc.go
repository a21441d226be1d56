// Package span defines the interval types shared by every alignment stage.
//
// A Span is a half-open range of unit indices in one sequence; an Alignment
// pairs a Span of sequence 1 with a Span of sequence 2. Both carry an explicit
// total order (Compare, CompareAlignments) plus the overlap and contiguity
// relations the gap expander and conflict resolver depend on. Values are
// plain structs and are never mutated in place: WithScore returns a copy.
package span
