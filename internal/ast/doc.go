// Package ast holds the declaration tree produced by one scan.
//
// Declarations and expressions are closed unions: every concrete type
// implements an unexported marker method, so only this package can add a
// variant. Consumers dispatch with a type switch; Kind exists for logging
// and tests that need to enumerate variants. Trees are built once by the
// parser and never mutated afterwards.
package ast
