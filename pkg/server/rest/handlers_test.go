package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/navigator"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/routingalgorithm"
	"github.com/JOSU10xD/MapMyCampus/pkg/graph"
	"github.com/JOSU10xD/MapMyCampus/pkg/kv"
	"github.com/JOSU10xD/MapMyCampus/pkg/server/rest"
	"github.com/JOSU10xD/MapMyCampus/pkg/server/rest/service"
	"github.com/JOSU10xD/MapMyCampus/pkg/snap"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store, err := graph.NewStore([]datastructure.Node{
		{ID: "a", Name: "Lobby", X: 0, Y: 0, Floor: 1},
		{ID: "b", Name: "Hallway", X: 10, Y: 0, Floor: 1},
		{ID: "c", Name: "Lab", X: 20, Y: 0, Floor: 1},
	}, []datastructure.Edge{
		{FromNodeID: "a", ToNodeID: "b", Cost: 10},
		{FromNodeID: "b", ToNodeID: "c", Cost: 10},
	})
	assert.NoError(t, err)

	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	assert.NoError(t, err)
	kvDB := kv.NewKVDB(db)
	t.Cleanup(kvDB.Close)
	kvDB.CreateNodeCells(store.Nodes())

	planner := routingalgorithm.NewRouteAlgorithm(store)
	reg := prometheus.NewRegistry()
	// tick period far beyond the test runtime keeps session state fully
	// driven by the requests below
	svc := service.NewNavigationService(store, planner, snap.NewFloorIndex(store.Nodes()), kvDB, reg,
		time.Hour, navigator.DeadEndHalt, navigator.DefaultStepDistance)

	m := rest.NewMetrics(reg)
	r := chi.NewRouter()
	rest.NavigatorRouter(r, svc, m)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutePreviewEndpoint(t *testing.T) {
	r := newTestRouter(t)

	t.Run("returns the route with instructions", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/navigations/route", `{"from": "a", "to": "c"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Path  string  `json:"path"`
			Dist  float64 `json:"distance"`
			Route []struct {
				ID string `json:"id"`
			} `json:"route"`
			Instructions []struct {
				Instruction string `json:"instruction"`
			} `json:"instructions"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Path)
		assert.InDelta(t, 20.0, resp.Dist, 1e-9)
		assert.Len(t, resp.Route, 3)
		assert.NotEmpty(t, resp.Instructions)
	})

	t.Run("unknown node is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/navigations/route", `{"from": "a", "to": "ghost"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/navigations/route", `{"from": "a"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/sessions", `{"mode": "manual"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID   string `json:"id"`
		Mode string `json:"mode"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "manual", created.Mode)

	base := "/api/sessions/" + created.ID

	t.Run("set a destination", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, base+"/destination", `{"from": "a", "to": "c"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var snap struct {
			Status       string   `json:"status"`
			RouteNodeIDs []string `json:"route_node_ids"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		assert.Equal(t, "following", snap.Status)
		assert.Equal(t, []string{"a", "b", "c"}, snap.RouteNodeIDs)
	})

	t.Run("hold and release inputs", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, base+"/drive", `{"held": true}`)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodPost, base+"/direction", `{"direction": "up", "held": true}`)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodPost, base+"/direction", `{"direction": "sideways", "held": true}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("snapshot and cancel", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, base, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, base+"/cancel", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodGet, base, "")
		assert.Equal(t, http.StatusOK, w.Code)
		var snap struct {
			Status string `json:"status"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		assert.Equal(t, "idle", snap.Status)
	})

	t.Run("close the session", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, base, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodGet, base, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown session is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/sessions/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNodeEndpoints(t *testing.T) {
	r := newTestRouter(t)

	t.Run("nearest node on a floor", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/nodes/nearest", `{"x": 8, "y": 1, "floor": 1}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var node struct {
			ID string `json:"id"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &node))
		assert.Equal(t, "b", node.ID)
	})

	t.Run("nearby nodes come from the cell store", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/nodes/nearby", `{"x": 1, "y": 1, "floor": 1}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Nodes)
	})

	t.Run("empty floor is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/nodes/nearest", `{"x": 0, "y": 0, "floor": 9}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
