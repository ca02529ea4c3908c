package observatory

import "weak"

// Derivation is a cached computation over automatically discovered
// observable/derivation inputs. Its compute closure is invoked once at
// construction and again on quiescence whenever a tracked input changed,
// driven by the two-phase stale/ready counter protocol below.
type Derivation[T comparable] struct {
	core     *nodeCore
	selfWeak weak.Pointer[nodeCore]

	compute func() T
	cached  T

	deps []*nodeCore // strong forward edges: this derivation's current dependencies

	staleCount int
	dirty      bool
}

// NewDerivation constructs a Derivation, running compute immediately to
// capture its initial value and its initial dependency set.
func NewDerivation[T comparable](compute func() T) *Derivation[T] {
	assertOwningGoroutine()

	d := &Derivation[T]{compute: compute}
	d.core = &nodeCore{}
	d.core.sendStale = d.onStale
	d.core.sendReady = d.onReady
	d.selfWeak = weak.Make(d.core)

	rt.stack.push()
	initial := compute()
	deps := rt.stack.pop()

	d.cached = initial
	d.deps = deps
	for _, dep := range deps {
		dep.addObserver(d.selfWeak)
	}

	return d
}

// NewDerivationDyn exists for symmetry with the source library's
// closure-erasing constructor. In Go, func() T is already a single
// reference type no matter which literal or captured closure produced
// it, so there is nothing further to erase — this is a direct alias.
func NewDerivationDyn[T comparable](compute func() T) *Derivation[T] {
	return NewDerivation(compute)
}

// onStale implements the SEND_STALE row of the state machine: bump the
// counter, and forward STALE to this derivation's own observers only on
// the transition from 0 to 1 (so a diamond's fan-in produces exactly one
// downstream STALE per write, not one per path).
func (d *Derivation[T]) onStale() {
	old := d.staleCount
	d.staleCount++
	if old == 0 {
		d.core.broadcastStale()
	}
}

// onReady implements the SEND_READY(changed) row: decrement the
// counter, OR changed into dirty, and once every pending stale path has
// settled (counter back to 0) either recompute or forward a no-op READY.
func (d *Derivation[T]) onReady(changed bool) {
	d.staleCount--
	if changed {
		d.dirty = true
	}
	if d.staleCount == 0 {
		if d.dirty {
			d.recompute()
		} else {
			d.core.broadcastReady(false)
		}
	}
}

// recompute re-runs the compute closure, diffs the newly discovered
// dependency set against the previous one, rewires observer links
// accordingly, and forwards READY with whether the cached value changed
// by equality.
func (d *Derivation[T]) recompute() {
	d.dirty = false

	rt.stack.push()
	newValue := d.compute()
	newDeps := rt.stack.pop()

	oldDeps := d.deps
	for _, dep := range oldDeps {
		if !containsNode(newDeps, dep) {
			dep.removeObserver(d.core)
		}
	}
	for _, dep := range newDeps {
		if !containsNode(oldDeps, dep) {
			dep.addObserver(d.selfWeak)
		}
	}
	d.deps = newDeps

	changed := newValue != d.cached
	if changed {
		d.cached = newValue
	}
	d.core.broadcastReady(changed)
}

func containsNode(list []*nodeCore, target *nodeCore) bool {
	for _, n := range list {
		if n == target {
			return true
		}
	}
	return false
}

// Dispose ends this derivation's life: it removes itself from every
// remaining dependency's observer list immediately, rather than waiting
// for the garbage collector to notice the derivation is unreachable and
// let its weak self-pointer go nil on its own. Required for the
// "subscribe then drop" scenario to take effect deterministically before
// the next write.
func (d *Derivation[T]) Dispose() {
	assertOwningGoroutine()
	for _, dep := range d.deps {
		dep.removeObserver(d.core)
	}
	d.deps = nil
}

// BorrowTracked reads the cached value, registering this derivation as a
// dependency of the derivation currently being computed.
func (d *Derivation[T]) BorrowTracked() *ReadGuard[T] {
	assertOwningGoroutine()
	rt.stack.noteRead(d.core)
	return &ReadGuard[T]{Value: d.cached}
}

// BorrowUntracked reads the cached value without affecting the capture
// stack.
func (d *Derivation[T]) BorrowUntracked() *ReadGuard[T] {
	assertOwningGoroutine()
	return &ReadGuard[T]{Value: d.cached}
}

// Read is sugar for BorrowTracked that returns the value by copy.
func (d *Derivation[T]) Read() T {
	g := d.BorrowTracked()
	defer g.Release()
	return g.Value
}

// Track names this derivation for Dump's graph rendering.
func (d *Derivation[T]) Track(name string) *Derivation[T] {
	assertOwningGoroutine()
	d.core.name = name
	registerRoot(d.core)
	return d
}

// Effect is a Derivation run purely for its side effects: fn reruns
// exactly once per quiescence in which any of its tracked reads changed,
// the same guarantee any other Derivation gets. Its own value
// (struct{}{}) is always equal to itself, so an Effect never itself
// reports "changed" to anything that might depend on it — which is
// expected, since nothing is meant to depend on an Effect.
func Effect(fn func()) *Derivation[struct{}] {
	return NewDerivation(func() struct{} {
		fn()
		return struct{}{}
	})
}
