//go:build !cgo

package verify

// Available reports whether Check can run.
func Available() bool { return false }

// Check always fails without cgo.
func Check([]byte) ([]Problem, error) { return nil, ErrUnavailable }
