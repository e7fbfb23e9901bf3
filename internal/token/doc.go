// Package token names the keywords of the Cython dialect.
// Invariants:
//   - Keywords are case-sensitive and only match as whole words.
//   - Built-in type names (int, double, bint, ...) are identifiers, not keywords.
//   - The reserved set guards ctypedef entries; it is narrower than the full keyword set.
package token
