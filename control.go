package reactive

import "github.com/arsenfield/reactive/internal"

// Untrack runs fn with the active subscriber suspended: reads of any
// State or Derived inside fn do not create dependency edges, regardless
// of nesting depth.
func Untrack(fn func()) {
	currentRuntime().Untrack(fn)
}

// SetActiveSub is the low-level primitive behind tracked reads: it
// installs node as the active subscriber on the current runtime and
// returns the previous one, which the caller is responsible for
// restoring. Most code should use Untrack or simply read inside a
// Derived/Effect instead of calling this directly.
func SetActiveSub(node *internal.Node) *internal.Node {
	return currentRuntime().SetActiveSub(node)
}

// IsState reports whether node is a state cell.
func IsState(node *internal.Node) bool { return node.IsState() }

// IsDerived reports whether node is a derived cell.
func IsDerived(node *internal.Node) bool { return node.IsDerived() }

// IsEffect reports whether node is an effect cell.
func IsEffect(node *internal.Node) bool { return node.IsEffect() }

// IsScope reports whether node is a scope.
func IsScope(node *internal.Node) bool { return node.IsScope() }
