package observatory

import (
	"io"
	"log/slog"
	"os"

	tree "github.com/m1gwings/treedrawer/tree"
)

// diagLogger is where FatalError is logged before its panic unwinds the
// stack. A caller that wants the library's fatal diagnostics routed
// elsewhere can swap this out with SetLogger before calling Init.
var diagLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetLogger replaces the logger used for fatal-error diagnostics.
func SetLogger(l *slog.Logger) {
	diagLogger = l
}

func logFatal(err *FatalError) {
	diagLogger.Error("observatory: fatal error",
		slog.String("kind", err.Kind.String()),
		slog.String("detail", err.Detail),
	)
}

// roots holds every node explicitly named via Track, for Dump to render.
// Membership is opt-in and by strong reference: a caller that tracks a
// node is declaring it interesting enough to keep around for the life of
// the program, the same way the rest of the pack's debug extensions hold
// onto whatever they're asked to report on.
var roots []*nodeCore

func registerRoot(n *nodeCore) {
	for _, existing := range roots {
		if existing == n {
			return
		}
	}
	roots = append(roots, n)
}

// Dump renders every Track'd node and its live observers as an ASCII
// tree to w, one tree per root. Nodes with no name print as "<unnamed>".
func Dump(w io.Writer) {
	assertOwningGoroutine()
	for _, root := range roots {
		t := tree.NewTree(tree.NodeString(label(root)))
		addChildren(t, root, map[*nodeCore]bool{root: true})
		io.WriteString(w, t.String())
		io.WriteString(w, "\n")
	}
}

func label(n *nodeCore) string {
	if n.name == "" {
		return "<unnamed>"
	}
	return n.name
}

// addChildren walks n's observers, which point the opposite direction
// from the dependency edges the graph is usually described in terms of
// — Dump renders "what would go stale if I changed", not "what I read".
// seen is shared across one root's whole tree, so a node that the
// cycle-free graph reaches by two paths is rendered once, under the first
// path walked.
func addChildren(t *tree.Tree, n *nodeCore, seen map[*nodeCore]bool) {
	for _, w := range n.observers {
		child := w.Value()
		if child == nil || seen[child] {
			continue
		}
		seen[child] = true
		childTree := t.AddChild(tree.NodeString(label(child)))
		addChildren(childTree, child, seen)
	}
}
