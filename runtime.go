package observatory

import (
	"sync/atomic"

	"github.com/petermattis/goid"
)

// runtimeState pins the graph to a single owning goroutine and hosts the
// capture stack. Unlike a lock, this is a one-time assignment checked on
// every operation — there is deliberately no way to move ownership to
// another goroutine once Init() has run.
type runtimeState struct {
	initialized atomic.Bool
	ownerGID    atomic.Int64

	stack captureStack
}

var rt runtimeState

// Init records the identity of the calling goroutine as the graph's
// owner. It must be called exactly once, before any other operation in
// this package. Calling it twice panics with AlreadyInitialized.
func Init() {
	if !rt.initialized.CompareAndSwap(false, true) {
		fail(AlreadyInitialized, "Init called a second time")
	}
	rt.ownerGID.Store(goid.Get())
}

// IsInitialized reports whether Init has been called.
func IsInitialized() bool {
	return rt.initialized.Load()
}

// MustInit calls Init only if the graph has not already been
// initialized, making it safe to call from package-level var
// initializers or test setup that may run more than once.
func MustInit() {
	if !IsInitialized() {
		Init()
	}
}

// assertOwningGoroutine panics with NotInitialized or WrongThread unless
// called from the goroutine that called Init. Every public operation
// that touches the graph calls this first.
func assertOwningGoroutine() {
	if !rt.initialized.Load() {
		fail(NotInitialized, "no call to Init() yet")
	}
	if gid := goid.Get(); gid != rt.ownerGID.Load() {
		fail(WrongThread, "graph owned by a different goroutine")
	}
}
