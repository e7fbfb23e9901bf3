// Package typemap translates dialect type names into stub type names.
//
// Translation happens in two stages: Partial sees each bare name before
// its parameters are attached, Complete sees the composed type string.
package typemap

import (
	"sync/atomic"
)

// Hooks is the pair of translation functions used by the renderer.
// A nil function is the identity.
type Hooks struct {
	Partial  func(string) string
	Complete func(string) string
}

// ApplyPartial runs the partial hook on name.
func (h Hooks) ApplyPartial(name string) string {
	if h.Partial == nil {
		return name
	}
	return h.Partial(name)
}

// ApplyComplete runs the complete hook on a composed type.
func (h Hooks) ApplyComplete(typ string) string {
	if h.Complete == nil {
		return typ
	}
	return h.Complete(typ)
}

// Identity returns hooks that leave every name unchanged.
func Identity() Hooks { return Hooks{} }

var defaults atomic.Pointer[Hooks]

func init() {
	defaults.Store(&Hooks{})
}

// Default returns the process-wide hooks.
func Default() Hooks {
	return *defaults.Load()
}

// SetDefault replaces the process-wide hooks. Conversions already running
// keep the hooks they started with.
func SetDefault(h Hooks) {
	defaults.Store(&h)
}

// SetPartial replaces the process-wide partial hook.
func SetPartial(fn func(string) string) {
	for {
		old := defaults.Load()
		next := *old
		next.Partial = fn
		if defaults.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetComplete replaces the process-wide complete hook.
func SetComplete(fn func(string) string) {
	for {
		old := defaults.Load()
		next := *old
		next.Complete = fn
		if defaults.CompareAndSwap(old, &next) {
			return
		}
	}
}
