package observatory

import "weak"

// nodeCore is the substrate shared by every Observable and Derivation: a
// list of weak backward edges (who observes this node) plus the
// type-erased capability to deliver STALE/READY to whichever Derivation
// is doing the observing. Only a node that belongs to a Derivation fills
// in sendStale/sendReady — a bare Observable is never itself observed
// from "above" since nothing can depend on a dependency's dependency
// without going through a Derivation.
//
// Identity is the pointer itself: Go's current collectors never move a
// reachable object, so address equality is stable for as long as the
// node is alive, which is exactly the "address equality on the
// allocation" rule the dependency/observer handles need.
type nodeCore struct {
	observers []weak.Pointer[nodeCore]

	sendStale func()
	sendReady func(changed bool)

	name string // optional, set via Track(); used only by Dump
}

// addObserver registers w as an observer of n, panicking with
// DuplicateObserver if an observer with the same identity is already
// registered (I3).
func (n *nodeCore) addObserver(w weak.Pointer[nodeCore]) {
	target := w.Value()
	for _, existing := range n.observers {
		if existing.Value() == target {
			fail(DuplicateObserver, "observer already subscribed to this node")
		}
	}
	n.observers = append(n.observers, w)
}

// removeObserver drops the observer identified by target from n's list.
// Silently does nothing if it is already absent — this happens
// routinely when a derivation that has already disposed itself later
// has its dependency diff computed, and when a weak target has already
// gone nil because its owner was garbage collected without an explicit
// Dispose.
func (n *nodeCore) removeObserver(target *nodeCore) {
	for i, existing := range n.observers {
		if v := existing.Value(); v == target {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// broadcastStale sends SEND_STALE to every observer, in registration
// order, from a snapshot of the list — so an observer that subscribes or
// unsubscribes during this broadcast (by recomputing, which it never
// does mid-STALE, or by disposing) does not perturb the current pass.
func (n *nodeCore) broadcastStale() {
	snapshot := append([]weak.Pointer[nodeCore](nil), n.observers...)
	for _, w := range snapshot {
		if target := w.Value(); target != nil && target.sendStale != nil {
			target.sendStale()
		}
	}
}

// broadcastReady sends SEND_READY(changed) to every observer, in the
// same registration order as broadcastStale, from a fresh snapshot.
func (n *nodeCore) broadcastReady(changed bool) {
	snapshot := append([]weak.Pointer[nodeCore](nil), n.observers...)
	for _, w := range snapshot {
		if target := w.Value(); target != nil && target.sendReady != nil {
			target.sendReady(changed)
		}
	}
}
