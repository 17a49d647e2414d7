package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/resolve/internal/config"
	"github.com/agenthands/resolve/internal/core/model"
	"github.com/agenthands/resolve/internal/driver"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := driver.NewMemoryStore()
	store.AddNode(model.GraphNode{
		ID:    "n1",
		Label: "Person",
		Name:  "John Doe",
		Properties: model.Properties{
			"email": model.StringValue("john@example.com"),
		},
	})
	store.AddNode(model.GraphNode{ID: "n2", Label: "Project", Name: "Apollo"})
	store.AddEdge(model.GraphEdge{
		ID:       "e1",
		SourceID: "n1",
		TargetID: "n2",
		Type:     "WORKS_ON",
	})

	srv := NewWithStore(store, config.Default())
	return srv.SetupRouter()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestResolveMention_UseExisting(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/resolve", ResolveRequest{Text: "John Doe"})
	require.Equal(t, http.StatusOK, w.Code)

	var res model.EntityResolution
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.UseExisting, res.Strategy)
	require.NotNil(t, res.EntityID)
	assert.Equal(t, "n1", *res.EntityID)
}

func TestResolveMention_EmptyTextIsBadRequest(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/resolve", ResolveRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveMention_InvalidBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveBatch_PreservesOrder(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/resolve/batch", ResolveBatchRequest{
		Texts: []string{"John Doe", "Completely Novel Entity"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Resolutions []*model.EntityResolution `json:"resolutions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Resolutions, 2)
	assert.Equal(t, model.UseExisting, body.Resolutions[0].Strategy)
	assert.Equal(t, model.CreateNew, body.Resolutions[1].Strategy)
}

func TestContext_ForQuery(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/context", ContextRequest{Text: "Ask John about Apollo"})
	require.Equal(t, http.StatusOK, w.Code)

	var gctx model.GraphContext
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gctx))
	_, okJohn := gctx.NodeByID("n1")
	_, okApollo := gctx.NodeByID("n2")
	assert.True(t, okJohn)
	assert.True(t, okApollo)
	assert.Len(t, gctx.Edges, 1)
}

func TestContext_AroundNode(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/context", ContextRequest{NodeID: "n1", MaxDepth: 1})
	require.Equal(t, http.StatusOK, w.Code)

	var gctx model.GraphContext
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gctx))
	_, okJohn := gctx.NodeByID("n1")
	_, okApollo := gctx.NodeByID("n2")
	assert.True(t, okJohn)
	assert.True(t, okApollo)
}

func TestContext_AroundUnknownNodeIsEmpty(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/context", ContextRequest{NodeID: "missing"})
	require.Equal(t, http.StatusOK, w.Code)

	var gctx model.GraphContext
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gctx))
	assert.Empty(t, gctx.Nodes)
	assert.Empty(t, gctx.Edges)
}
