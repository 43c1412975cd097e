package http

import (
	"context"
	"errors"
	"mcatalog/catalog/internal/gateway"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/limiter"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := zap.NewNop()
	return New(srv.URL, "test-key", 200*time.Millisecond, limiter.New(logger, 100, 100), logger)
}

func TestPopularSuccess(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page":2,"total_pages":40,"total_results":800,"results":[{"id":603,"title":"The Matrix","vote_average":8.2}]}`))
	})

	p, err := g.Popular(context.Background(), model.MediaTypeMovie, 2)
	require.NoError(t, err)
	assert.False(t, p.Degraded)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 40, p.TotalPages)
	assert.Equal(t, 800, p.TotalResults)
	require.Len(t, p.Results, 1)
	assert.Equal(t, "The Matrix", p.Results[0].Title)
}

func TestPopularDegradesOnServerError(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	p, err := g.Popular(context.Background(), model.MediaTypeTv, 1)
	require.NoError(t, err)
	assert.True(t, p.Degraded)
	assert.Equal(t, 1, p.TotalPages)
	assert.NotEmpty(t, p.Results)
	assert.Equal(t, "tv", p.Results[0].MediaType)
}

func TestPopularDegradesOnTimeout(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	})

	p, err := g.Popular(context.Background(), model.MediaTypeMovie, 1)
	require.NoError(t, err)
	assert.True(t, p.Degraded)
	assert.Equal(t, 1, p.TotalPages)
	assert.Len(t, p.Results, placeholderPageSize)

	// Deterministic placeholder content across calls.
	again, err := g.Popular(context.Background(), model.MediaTypeMovie, 1)
	require.NoError(t, err)
	assert.Equal(t, p.Results, again.Results)
}

func TestTopRatedDegradesOnServerError(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	p, err := g.TopRated(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, p.Degraded)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 1, p.TotalPages)
}

func TestDetailNotFoundFailsLoud(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := g.Detail(context.Background(), "603", model.MediaTypeMovie)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestDetailServerErrorFailsLoud(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := g.Detail(context.Background(), "603", model.MediaTypeMovie)
	assert.ErrorIs(t, err, gateway.ErrUnavailable)
}

func TestDetailRoutesByMediaType(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1396", r.URL.Path)
		w.Write([]byte(`{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20"}`))
	})

	rec, err := g.Detail(context.Background(), "1396", model.MediaTypeTv)
	require.NoError(t, err)
	assert.Equal(t, "Breaking Bad", rec.Name)
}

func TestPerson(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person/287", r.URL.Path)
		w.Write([]byte(`{"id":287,"name":"Brad Pitt","profile_path":"/pitt.jpg","known_for_department":"Acting"}`))
	})

	p, err := g.Person(context.Background(), "287")
	require.NoError(t, err)
	assert.Equal(t, "Brad Pitt", p.Name)
	assert.Equal(t, "Acting", p.KnownFor)
}

func TestSearchFailurePropagates(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := g.Search(context.Background(), "batman", 1, model.SearchKindMulti)
	require.Error(t, err)
	assert.False(t, errors.Is(err, gateway.ErrNotFound))
}

func TestSearchEnvelopePassthrough(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "batman", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"total_pages":9,"total_results":171,"results":[{"id":268,"title":"Batman","media_type":"movie"},{"id":2358,"name":"Adam West","media_type":"person"}]}`))
	})

	p, err := g.Search(context.Background(), "batman", 1, model.SearchKindMulti)
	require.NoError(t, err)
	assert.Equal(t, 9, p.TotalPages)
	assert.Equal(t, 171, p.TotalResults)
	assert.Len(t, p.Results, 2)
}
