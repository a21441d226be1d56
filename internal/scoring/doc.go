// Package scoring builds similarity matrices between two sequences of text
// units.
//
// A Builder combines weighted content strategies (fuzz, cosine) into one
// matrix and then applies positional adjustments (distance) in a fixed order.
// Weights arrive either as the typed Weights struct or, from configuration
// and CLI flags, as a strategy-name map validated by ParseWeights.
package scoring
