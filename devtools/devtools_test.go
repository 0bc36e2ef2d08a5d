package devtools_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arsenfield/reactive"
	"github.com/arsenfield/reactive/devtools"
	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("tracks created nodes and forgets disposed ones", func(t *testing.T) {
		reg := devtools.NewRegistry()
		reactive.SetObserver(reg)
		defer reactive.SetObserver(nil)

		a := reactive.NewState(1)
		d := reactive.NewDerived(func(prev int, ok bool) int { return a.Read() * 2 })
		e := reactive.NewEffect(func() { d.Read() })

		snapshot := reg.Snapshot()
		assert.Len(t, snapshot, 3)

		kinds := map[string]int{}
		for _, v := range snapshot {
			kinds[v.Kind]++
		}
		assert.Equal(t, 1, kinds["state"])
		assert.Equal(t, 1, kinds["derived"])
		assert.Equal(t, 1, kinds["effect"])

		e.Stop()
		assert.Len(t, reg.Snapshot(), 2)
	})

	t.Run("records dep/sub edges by debug id", func(t *testing.T) {
		reg := devtools.NewRegistry()
		reactive.SetObserver(reg)
		defer reactive.SetObserver(nil)

		a := reactive.NewState(1)
		d := reactive.NewDerived(func(prev int, ok bool) int { return a.Read() * 2 })
		reactive.NewEffect(func() { d.Read() })

		var stateView, derivedView devtools.NodeView
		for _, v := range reg.Snapshot() {
			switch v.Kind {
			case "state":
				stateView = v
			case "derived":
				derivedView = v
			}
		}

		assert.Contains(t, stateView.Subs, derivedView.ID)
		assert.Contains(t, derivedView.Deps, stateView.ID)
	})

	t.Run("handler serves the snapshot as JSON", func(t *testing.T) {
		reg := devtools.NewRegistry()
		reactive.SetObserver(reg)
		defer reactive.SetObserver(nil)

		reactive.NewState(1)

		req := httptest.NewRequest(http.MethodGet, "/graph", nil)
		rec := httptest.NewRecorder()
		reg.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var views []devtools.NodeView
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		assert.Len(t, views, 1)
		assert.Equal(t, "state", views[0].Kind)
	})
}
