package http

import (
	"context"
	"encoding/json"
	"fmt"
	"mcatalog/catalog/internal/gateway"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/limiter"
	"mcatalog/pkg/logging"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerId = "gateway-tmdb"

// placeholderPageSize is the fixed number of synthetic entries in a
// degraded listing page.
const placeholderPageSize = 10

// Gateway defines an HTTP gateway for the remote metadata provider.
//
// Failure policy: listing calls (Popular, TopRated) never fail, they
// substitute a deterministic placeholder page tagged as degraded.
// Point queries (Detail, Person) and Search fail loud, since a
// placeholder would misrepresent a direct user request.
type Gateway struct {
	baseUrl string
	apiKey  string
	client  *http.Client
	limiter *limiter.Limiter
	logger  *zap.Logger
}

// New creates a new HTTP gateway for the metadata provider.
func New(baseUrl string, apiKey string, timeout time.Duration, l *limiter.Limiter, logger *zap.Logger) *Gateway {
	logger = logger.With(
		zap.String(logging.FieldComponent, "tmdb-gateway"),
		zap.String(logging.FieldType, "http"),
	)
	return &Gateway{
		baseUrl: baseUrl,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		limiter: l,
		logger:  logger,
	}
}

// Popular returns one page of popular movies or shows. On provider
// failure it returns a placeholder page, never an error.
func (g *Gateway) Popular(ctx context.Context, mediaType model.MediaType, page int) (*model.ProviderPage, error) {
	if mediaType != model.MediaTypeTv {
		mediaType = model.MediaTypeMovie
	}
	var p model.ProviderPage
	if err := g.get(ctx, fmt.Sprintf("/%s/popular", mediaType), pageQuery(page), &p); err != nil {
		g.logger.Warn("Popular listing degraded to placeholder data", zap.Error(err))
		return placeholderPage(mediaType, page), nil
	}
	return &p, nil
}

// TopRated returns one page of top rated movies. On provider failure
// it returns a placeholder page, never an error.
func (g *Gateway) TopRated(ctx context.Context, page int) (*model.ProviderPage, error) {
	var p model.ProviderPage
	if err := g.get(ctx, "/movie/top_rated", pageQuery(page), &p); err != nil {
		g.logger.Warn("Top rated listing degraded to placeholder data", zap.Error(err))
		return placeholderPage(model.MediaTypeMovie, page), nil
	}
	return &p, nil
}

// Detail returns a single record by its provider id, or
// gateway.ErrNotFound when the provider has no such record or the
// call failed.
func (g *Gateway) Detail(ctx context.Context, externalId string, mediaType model.MediaType) (*model.ProviderRecord, error) {
	if mediaType != model.MediaTypeTv {
		mediaType = model.MediaTypeMovie
	}
	var r model.ProviderRecord
	if err := g.get(ctx, fmt.Sprintf("/%s/%s", mediaType, url.PathEscape(externalId)), nil, &r); err != nil {
		g.logger.Warn("Detail lookup failed", zap.String("externalId", externalId), zap.Error(err))
		return nil, err
	}
	return &r, nil
}

// Person returns a single person record by its provider id.
func (g *Gateway) Person(ctx context.Context, externalId string) (*model.Person, error) {
	var r model.ProviderRecord
	if err := g.get(ctx, "/person/"+url.PathEscape(externalId), nil, &r); err != nil {
		g.logger.Warn("Person lookup failed", zap.String("externalId", externalId), zap.Error(err))
		return nil, err
	}
	p := model.PersonFromProviderRecord(&r)
	return &p, nil
}

// Search returns one raw page of search results for the given kind.
// Search failures propagate to the caller.
func (g *Gateway) Search(ctx context.Context, query string, page int, kind model.SearchKind) (*model.ProviderPage, error) {
	if kind != model.SearchKindPerson {
		kind = model.SearchKindMulti
	}
	values := pageQuery(page)
	values.Set("query", query)
	var p model.ProviderPage
	if err := g.get(ctx, fmt.Sprintf("/search/%s", kind), values, &p); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return &p, nil
}

// get issues one outbound request and decodes the JSON response.
func (g *Gateway) get(ctx context.Context, path string, values url.Values, out any) error {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Gateway/get")
	defer span.End()
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseUrl+path, nil)
	if err != nil {
		return err
	}
	if values == nil {
		values = url.Values{}
	}
	values.Set("api_key", g.apiKey)
	req.URL.RawQuery = values.Encode()

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return gateway.ErrNotFound
	} else if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: non-2xx status code: %d", gateway.ErrUnavailable, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	return values
}

// placeholderPage builds the synthetic page substituted for a failed
// listing call. The content is deterministic so cached UI snapshots
// stay stable while the provider is down.
func placeholderPage(mediaType model.MediaType, page int) *model.ProviderPage {
	results := make([]model.ProviderRecord, placeholderPageSize)
	for i := range results {
		results[i] = model.ProviderRecord{
			Id:        int64(-(i + 1)),
			Title:     "Currently unavailable",
			Overview:  "The metadata provider is unreachable. Please try again later.",
			MediaType: string(mediaType),
		}
	}
	return &model.ProviderPage{
		Page:         page,
		TotalPages:   1,
		TotalResults: placeholderPageSize,
		Results:      results,
		Degraded:     true,
	}
}
