// Package observatory provides MobX-style reactive observables.
//
// A minimal example:
//
//	observatory.Init()
//	firstName := observatory.NewObservable("William")
//	lastName := observatory.NewObservable("Riker")
//	nickname := observatory.NewObservable("")
//
//	// A Derivation runs its compute closure immediately, and the closure's
//	// reads of firstName, lastName, and nickname are captured automatically.
//	displayName := observatory.NewDerivation(func() string {
//		if n := nickname.Read(); n != "" {
//			return n
//		}
//		return firstName.Read() + " " + lastName.Read()
//	})
//
//	fmt.Println(displayName.BorrowUntracked().Value) // "William Riker"
//	firstName.Set("Will of Yam")
//	fmt.Println(displayName.BorrowUntracked().Value) // "Will of Yam Riker"
//	nickname.Set("Number One")
//	fmt.Println(displayName.BorrowUntracked().Value) // "Number One"
//
//	// displayName no longer reads firstName or lastName, so this is a no-op:
//	lastName.Set("Something else")
//
// # Observables
//
// NewObservable returns an *Observable[T]. These hold a single piece of
// data which can be changed through Set or BorrowMut. Reads go through
// BorrowTracked (or its Read shorthand) when called from inside a
// Derivation's compute closure, and through BorrowUntracked everywhere
// else — calling BorrowTracked with no derivation currently computing
// panics with ReadOutsideDerivation.
//
// # Derivations
//
// Derivations are themselves observable: other derivations can read
// them. They have no Set or BorrowMut, since their value is entirely a
// function of the closure passed to NewDerivation. That closure reruns
// automatically whenever something it read last time has changed, and
// the rerun's own reads replace the previous dependency set — a
// derivation that stops reading an observable mid-lifetime stops being
// notified about it, as in the nickname/lastName example above.
//
// # Lifecycle
//
// Go has no deterministic destructors, so a Derivation that should stop
// observing its dependencies before it becomes unreachable must call
// Dispose. A derivation that is simply dropped without disposal is
// still cleaned up eventually: its dependencies hold it only by a weak
// pointer, so once the garbage collector reclaims it those edges go
// inert on their own, just later and at a GC's discretion rather than
// immediately.
package observatory
