package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mcatalog/catalog/internal/auth"
	"mcatalog/catalog/internal/controller/catalog"
	"mcatalog/catalog/internal/controller/list"
	tmdb "mcatalog/catalog/internal/gateway/tmdb/http"
	"mcatalog/catalog/internal/repository/memory"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/limiter"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T, providerURL string) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	repo := memory.New(logger)
	gateway := tmdb.New(providerURL, "key", time.Second, limiter.New(logger, 1000, 1000), logger)
	catalogCtrl := catalog.New(repo, gateway, logger)
	listCtrl := list.New(repo, nil, logger)
	verifier := auth.NewVerifier(func() []byte { return testSecret }, logger)
	h := New(catalogCtrl, listCtrl, tally.NoopScope, logger)
	return h.Router(verifier.Middleware)
}

func newProviderServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 603, "title": "The Matrix", "vote_average": 8.2, "release_date": "1999-03-30",
		})
	})
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"page": 1, "total_pages": 1, "total_results": 2,
			"results": []map[string]any{
				{"id": 603, "title": "The Matrix", "media_type": "movie"},
				{"id": 6384, "name": "Keanu Reeves", "media_type": "person"},
			},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func bearer(t *testing.T, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": username, "iat": time.Now().Unix()})
	s, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return "Bearer " + s
}

func doJSON(t *testing.T, router http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetItemFallsBackToProvider(t *testing.T) {
	router := newTestRouter(t, newProviderServer(t).URL)

	w := doJSON(t, router, http.MethodGet, "/api/v1/items/603", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details model.ItemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "The Matrix", details.Item.Title)
	assert.Nil(t, details.Rating)

	w = doJSON(t, router, http.MethodGet, "/api/v1/items/999999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch(t *testing.T) {
	router := newTestRouter(t, newProviderServer(t).URL)

	w := doJSON(t, router, http.MethodGet, "/api/v1/search?query=matrix", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page model.SearchPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 1)
	assert.Len(t, page.People, 1)
	assert.Equal(t, 2, page.TotalResults)

	w = doJSON(t, router, http.MethodGet, "/api/v1/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/search?query=x&kind=company", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListLifecycle(t *testing.T) {
	router := newTestRouter(t, newProviderServer(t).URL)
	token := bearer(t, "alice")
	seed := model.ItemSeed{ExternalId: "603", Title: "The Matrix", MediaType: model.MediaTypeMovie}

	w := doJSON(t, router, http.MethodPost, "/api/v1/list", "", seed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/list", token, seed)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/list", token, seed)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/list", token, model.ItemSeed{Title: "No external id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/ratings/603", token, map[string]int{"value": 90})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/ratings/603", token, map[string]int{"value": 101})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/ratings/404404", token, map[string]int{"value": 50})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []model.ListEntryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Rating)
	assert.Equal(t, model.RatingValue(90), *entries[0].Rating)

	// The aggregate shows up on the item now that the store owns it.
	w = doJSON(t, router, http.MethodGet, "/api/v1/items/603", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details model.ItemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.NotNil(t, details.Rating)
	assert.Equal(t, float64(90), *details.Rating)
	assert.Equal(t, int64(1), details.RatingCount)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/list/603", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/v1/list/603", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestContributors(t *testing.T) {
	router := newTestRouter(t, newProviderServer(t).URL)

	w := doJSON(t, router, http.MethodPost, "/api/v1/list", bearer(t, "alice"),
		model.ItemSeed{ExternalId: "603", Title: "The Matrix"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/contributors?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var contributors []model.Contributor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contributors))
	require.Len(t, contributors, 1)
	assert.Equal(t, model.UserId("alice"), contributors[0].UserId)
}

func TestDiscoverDegradesOnProviderOutage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	router := newTestRouter(t, srv.URL)

	w := doJSON(t, router, http.MethodGet, "/api/v1/discover/popular?mediaType=tv", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page model.SearchPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.NotEmpty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}
