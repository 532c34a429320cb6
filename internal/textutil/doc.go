// Package textutil provides text helpers shared by the reference loaders and
// the CLI.
//
// The primary use cases are:
//   - Decoding reference files written in legacy character sets (Latin-1,
//     Windows-1252) into UTF-8
//   - Creating token fingerprints of protocol names and ranking near matches
//     with cosine similarity
//
// Tokenization lowercases and accent-folds text, splits on non-alphanumeric
// characters, and keeps tokens of two characters or more so short codes such
// as "T1" or "AX" still count.
package textutil
