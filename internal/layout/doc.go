// Package layout computes the offside-rule structure of a source file.
//
// Physical lines are grouped into logical lines: a newline inside an open
// bracket, inside a triple-quoted string or after a backslash does not end
// the logical line. Indentation and block extents are then defined over
// logical lines only, so a multi-line argument list or docstring never
// breaks a block.
package layout
