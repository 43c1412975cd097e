package testutil

import (
	"mcatalog/catalog/internal/auth"
	"mcatalog/catalog/internal/controller/catalog"
	"mcatalog/catalog/internal/controller/list"
	handlerhttp "mcatalog/catalog/internal/handler/http"
	"mcatalog/catalog/internal/repository/memory"
	"mcatalog/pkg/limiter"
	"mcatalog/pkg/logging"
	"net/http"
	"time"

	tmdb "mcatalog/catalog/internal/gateway/tmdb/http"

	"github.com/uber-go/tally/v6"
	"go.uber.org/zap"
)

// NewTestCatalogServer wires a catalog HTTP server over the in-memory
// repository and a provider reachable at providerURL, for tests that
// exercise the full request path.
func NewTestCatalogServer(providerURL string, secret []byte, logger *zap.Logger) http.Handler {
	logger = logger.With(
		zap.String(logging.FieldService, "catalog"),
	)
	repo := memory.New(logger)
	gateway := tmdb.New(providerURL, "test-api-key", 3*time.Second, limiter.New(logger, 1000, 1000), logger)
	catalogCtrl := catalog.New(repo, gateway, logger)
	listCtrl := list.New(repo, nil, logger)
	verifier := auth.NewVerifier(func() []byte { return secret }, logger)
	h := handlerhttp.New(catalogCtrl, listCtrl, tally.NoopScope, logger)
	return h.Router(verifier.Middleware)
}
