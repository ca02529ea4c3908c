package observatory

import "fmt"

// Kind identifies one of the fatal, unrecoverable misuse categories the
// graph can detect. None of these represent transient or I/O failures —
// the library has none — so none of them are meant to be handled beyond
// a top-level recover() in a test harness.
type Kind int

const (
	// NotInitialized means a graph operation ran before Init().
	NotInitialized Kind = iota
	// AlreadyInitialized means Init() ran more than once.
	AlreadyInitialized
	// WrongThread means a graph operation ran from a goroutine other
	// than the one that called Init().
	WrongThread
	// ReadOutsideDerivation means a tracked read happened with no
	// active capture frame.
	ReadOutsideDerivation
	// BorrowConflict means a mutable and immutable borrow of the same
	// observable's value overlapped.
	BorrowConflict
	// DuplicateObserver means the same observer was registered twice
	// on the same node, violating I3.
	DuplicateObserver
	// InternalUnderflow means the capture stack was popped more times
	// than it was pushed.
	InternalUnderflow
)

func (k Kind) String() string {
	switch k {
	case NotInitialized:
		return "NotInitialized"
	case AlreadyInitialized:
		return "AlreadyInitialized"
	case WrongThread:
		return "WrongThread"
	case ReadOutsideDerivation:
		return "ReadOutsideDerivation"
	case BorrowConflict:
		return "BorrowConflict"
	case DuplicateObserver:
		return "DuplicateObserver"
	case InternalUnderflow:
		return "InternalUnderflow"
	default:
		return "Unknown"
	}
}

// FatalError is the single error type the graph raises. It is always
// delivered via panic, never as a returned value, per the library's
// no-recoverable-errors policy.
type FatalError struct {
	Kind   Kind
	Detail string
}

func (e *FatalError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func fail(kind Kind, detail string) {
	err := &FatalError{Kind: kind, Detail: detail}
	logFatal(err)
	panic(err)
}
