// Package devtools serves the live graph of the calling goroutine's
// runtime as JSON over a plain net/http handler, for a browser-side
// viewer to poll. It is debug-gated infrastructure only: attaching it
// costs one registry map entry per live node, plus a lazily-assigned UUID
// per node once a snapshot is built (see internal.Node.DebugID). Per
// spec, there is no bundled UI here, only the
// endpoint a UI would call.
package devtools

import (
	"encoding/json"
	"net/http"

	"github.com/arsenfield/reactive"
	"github.com/arsenfield/reactive/internal"
)

// NodeView is the JSON-serializable snapshot of one graph node.
type NodeView struct {
	ID    string   `json:"id"`
	Kind  string   `json:"kind"`
	Flags uint16   `json:"flags"`
	Deps  []string `json:"deps"`
	Subs  []string `json:"subs"`
}

func kindOf(n *internal.Node) string {
	switch {
	case reactive.IsState(n):
		return "state"
	case reactive.IsDerived(n):
		return "derived"
	case reactive.IsEffect(n):
		return "effect"
	case reactive.IsScope(n):
		return "scope"
	default:
		return "unknown"
	}
}

func view(n *internal.Node) NodeView {
	deps := reactive.NodeDeps(n)
	subs := reactive.NodeSubs(n)

	v := NodeView{
		ID:    n.DebugID(),
		Kind:  kindOf(n),
		Flags: uint16(reactive.NodeFlags(n)),
		Deps:  make([]string, len(deps)),
		Subs:  make([]string, len(subs)),
	}
	for i, d := range deps {
		v.Deps[i] = d.DebugID()
	}
	for i, s := range subs {
		v.Subs[i] = s.DebugID()
	}
	return v
}

// Registry tracks every node an Observer attached to it has seen, so the
// HTTP handler below has something to serialize. It implements
// internal.Observer directly.
type Registry struct {
	nodes map[*internal.Node]struct{}
}

// NewRegistry creates an empty registry. Attach it to a runtime with
// reactive.SetObserver to start collecting nodes.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[*internal.Node]struct{})}
}

func (r *Registry) OnNodeCreate(n *internal.Node) { r.nodes[n] = struct{}{} }
func (r *Registry) OnRecompute(*internal.Node, error) {}
func (r *Registry) OnDispose(n *internal.Node)    { delete(r.nodes, n) }
func (r *Registry) OnError(*internal.Node, error) {}

// Snapshot returns the current set of tracked nodes as JSON-ready views.
func (r *Registry) Snapshot() []NodeView {
	views := make([]NodeView, 0, len(r.nodes))
	for n := range r.nodes {
		views = append(views, view(n))
	}
	return views
}

// Handler returns an http.Handler serving r's current snapshot as JSON on
// every request, in the handler shape this pack's dependency-injection
// example repo uses for its own debug HTTP endpoints.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(r.Snapshot()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
