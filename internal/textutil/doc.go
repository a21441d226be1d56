// Package textutil provides the text similarity primitives behind the
// alignment scoring strategies.
//
// The primary use cases are:
//   - Ratio: a normalized edit-distance similarity between two units
//   - Fingerprint/CosineSimilarity: token term-frequency vectors compared by
//     cosine similarity, optionally IDF-weighted through a Corpus
//
// Tokenization case-folds text, splits on anything that is not a letter or
// digit, and filters tokens shorter than 3 characters.
package textutil
