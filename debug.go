package reactive

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/arsenfield/reactive/internal"
)

// NodeFlags returns the raw flag bits of node, for collaborators that want
// to inspect propagation state directly rather than through IsState etc.
func NodeFlags(node *internal.Node) internal.NodeFlags { return node.Flags }

// NodeDeps returns the nodes node currently depends on, in read order.
func NodeDeps(node *internal.Node) []*internal.Node { return node.Deps() }

// NodeSubs returns the nodes currently subscribed to node.
func NodeSubs(node *internal.Node) []*internal.Node { return node.Subs() }

// SetObserver attaches a debug observer to the current goroutine's
// runtime. Pass nil to detach (restoring the zero-cost no-op default).
func SetObserver(o internal.Observer) {
	currentRuntime().SetObserver(o)
}

// SlogObserver adapts a *slog.Logger into an internal.Observer, following
// the same "wrap a slog.Handler around a debug extension point" idiom
// used for dependency-graph observability elsewhere in this ecosystem.
type SlogObserver struct {
	Logger *slog.Logger
}

func (s SlogObserver) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s SlogObserver) OnNodeCreate(n *internal.Node) {
	s.logger().Debug("reactive: node created", "id", n.DebugID(), "kind", kindLabel(n))
}

func (s SlogObserver) OnRecompute(n *internal.Node, err error) {
	if err != nil {
		s.logger().Error("reactive: recompute failed", "id", n.DebugID(), "error", err)
		return
	}
	s.logger().Debug("reactive: recomputed", "id", n.DebugID())
}

func (s SlogObserver) OnDispose(n *internal.Node) {
	s.logger().Debug("reactive: disposed", "id", n.DebugID())
}

func (s SlogObserver) OnError(n *internal.Node, err error) {
	s.logger().Error("reactive: error", "id", n.DebugID(), "error", err)
}

func kindLabel(n *internal.Node) string {
	switch {
	case n.IsState():
		return "state"
	case n.IsDerived():
		return "derived"
	case n.IsEffect():
		return "effect"
	case n.IsScope():
		return "scope"
	default:
		return "unknown"
	}
}

// DebugTree renders node's subscriber graph as ASCII art, for pasting into
// a log line or terminal when puzzling out why something didn't update.
func DebugTree(node *internal.Node) string {
	t := buildDebugTree(node, map[*internal.Node]bool{})
	if t == nil {
		return ""
	}
	return t.String()
}

func buildDebugTree(n *internal.Node, visited map[*internal.Node]bool) *tree.Tree {
	if visited[n] {
		return nil
	}
	visited[n] = true

	label := fmt.Sprintf("%s(%s)", kindLabel(n), n.DebugID())
	t := tree.NewTree(tree.NodeString(label))

	subs := n.Subs()
	sort.Slice(subs, func(i, j int) bool { return subs[i].DebugID() < subs[j].DebugID() })

	for _, sub := range subs {
		if child := buildDebugTree(sub, visited); child != nil {
			attachSubtree(t, child)
		}
	}
	return t
}

// attachSubtree grafts child (and everything beneath it) onto parent as a
// new child node: treedrawer's AddChild only takes a value, so the
// subtree has to be copied over level by level.
func attachSubtree(parent *tree.Tree, child *tree.Tree) {
	node := parent.AddChild(child.Val())
	for _, grandchild := range child.Children() {
		attachSubtree(node, grandchild)
	}
}
