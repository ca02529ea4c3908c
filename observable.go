package observatory

// borrowState enforces single-writer/multi-reader aliasing on an
// observable's value, dynamically, the way a RefCell does. There is no
// mutex here: the graph is confined to one goroutine (I5), so this is a
// plain counter check, not a lock — a second overlapping borrow is a
// programming error, not a race to arbitrate.
type borrowState struct {
	readers int
	writing bool
}

func (b *borrowState) beginRead() {
	if b.writing {
		fail(BorrowConflict, "immutable borrow while a mutable borrow is outstanding")
	}
	b.readers++
}

func (b *borrowState) endRead() {
	b.readers--
}

func (b *borrowState) beginWrite() {
	if b.writing || b.readers > 0 {
		fail(BorrowConflict, "mutable borrow while another borrow is outstanding")
	}
	b.writing = true
}

func (b *borrowState) endWrite() {
	b.writing = false
}

// Observable is a leaf node holding a mutable, equality-comparable value
// whose reads are tracked automatically when taken from inside a
// Derivation's compute closure.
type Observable[T comparable] struct {
	core  *nodeCore
	value T
	state borrowState
}

// NewObservable constructs an Observable holding initial.
func NewObservable[T comparable](initial T) *Observable[T] {
	assertOwningGoroutine()
	return &Observable[T]{
		core:  &nodeCore{},
		value: initial,
	}
}

// ReadGuard is a released-on-Release read handle to an Observable or
// Derivation's value. Go has no scope-exit destructor, so unlike the
// Rust original's Ref/RefMut this must be released explicitly — the
// idiomatic replacement is `defer guard.Release()` at the call site.
type ReadGuard[T comparable] struct {
	Value   T
	release func()
}

// Release ends this borrow.
func (g *ReadGuard[T]) Release() {
	if g.release != nil {
		g.release()
		g.release = nil
	}
}

// WriteGuard is a mutable handle into an Observable's storage. Mutating
// *Value in place and then calling Release is equivalent to Set, and is
// how in-place mutation of larger values is done without a full copy.
type WriteGuard[T comparable] struct {
	Value   *T
	release func()
}

// Release ends this borrow, broadcasting STALE then READY(true) to the
// observable's observers — unconditionally, matching Set's
// broadcast-always behavior, since a mutable borrow offers no cheap way
// to know whether *Value actually changed.
func (g *WriteGuard[T]) Release() {
	if g.release != nil {
		g.release()
		g.release = nil
	}
}

// BorrowTracked reads the value, registering this observable as a
// dependency of the derivation currently being computed. Panics with
// ReadOutsideDerivation if there is no such derivation.
func (o *Observable[T]) BorrowTracked() *ReadGuard[T] {
	assertOwningGoroutine()
	rt.stack.noteRead(o.core)
	o.state.beginRead()
	return &ReadGuard[T]{Value: o.value, release: func() { o.state.endRead() }}
}

// BorrowUntracked reads the value without affecting the capture stack.
func (o *Observable[T]) BorrowUntracked() *ReadGuard[T] {
	assertOwningGoroutine()
	o.state.beginRead()
	return &ReadGuard[T]{Value: o.value, release: func() { o.state.endRead() }}
}

// BorrowMut returns a handle for in-place mutation. Call Release (or
// defer it) when done; Release is what triggers propagation.
func (o *Observable[T]) BorrowMut() *WriteGuard[T] {
	assertOwningGoroutine()
	o.state.beginWrite()
	return &WriteGuard[T]{
		Value: &o.value,
		release: func() {
			o.state.endWrite()
			o.core.broadcastStale()
			o.core.broadcastReady(true)
		},
	}
}

// Set replaces the value. It broadcasts STALE then READY(changed=true)
// regardless of whether new equals the previous value — the source's
// broadcast-always behavior, preserved per the spec's open question
// rather than tightened to an early return, so P5 (quiescence) holds
// without depending on equality reasoning here.
func (o *Observable[T]) Set(new T) {
	assertOwningGoroutine()
	o.state.beginWrite()
	if new != o.value {
		o.value = new
	}
	o.state.endWrite()
	o.core.broadcastStale()
	o.core.broadcastReady(true)
}

// Read is sugar for BorrowTracked that releases immediately and returns
// the value by copy.
func (o *Observable[T]) Read() T {
	g := o.BorrowTracked()
	defer g.Release()
	return g.Value
}

// Write is sugar for Set.
func (o *Observable[T]) Write(v T) {
	o.Set(v)
}

// Track names this observable for Dump's graph rendering.
func (o *Observable[T]) Track(name string) *Observable[T] {
	assertOwningGoroutine()
	o.core.name = name
	registerRoot(o.core)
	return o
}
