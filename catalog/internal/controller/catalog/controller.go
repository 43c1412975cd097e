package catalog

import (
	"context"
	"errors"
	"mcatalog/catalog/internal/gateway"
	"mcatalog/catalog/internal/repository"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/logging"

	"go.uber.org/zap"
)

// ErrNotFound is returned when an item is neither stored locally nor
// resolvable through the provider.
var ErrNotFound = errors.New("catalog item not found")

type catalogRepository interface {
	GetItemByExternalId(ctx context.Context, externalId string) (*model.ItemDetails, error)
}

type metadataProvider interface {
	Popular(ctx context.Context, mediaType model.MediaType, page int) (*model.ProviderPage, error)
	TopRated(ctx context.Context, page int) (*model.ProviderPage, error)
	Detail(ctx context.Context, externalId string, mediaType model.MediaType) (*model.ProviderRecord, error)
	Person(ctx context.Context, externalId string) (*model.Person, error)
	Search(ctx context.Context, query string, page int, kind model.SearchKind) (*model.ProviderPage, error)
}

// Controller defines a catalog browsing controller: hybrid item lookup
// and search aggregation on top of the store and the provider.
type Controller struct {
	repo     catalogRepository
	provider metadataProvider
	logger   *zap.Logger
}

// New creates a catalog controller.
func New(repo catalogRepository, provider metadataProvider, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "catalog-controller"))
	return &Controller{repo: repo, provider: provider, logger: logger}
}

// GetItem resolves an item by external id: local store first, provider
// on miss. Once any user has added the item the store is authoritative
// and its aggregated rating is returned, never the provider score. A
// provider miss never creates a store row; persistence happens only on
// the add-to-list path.
func (c *Controller) GetItem(ctx context.Context, externalId string, mediaType model.MediaType) (*model.ItemDetails, error) {
	details, err := c.repo.GetItemByExternalId(ctx, externalId)
	if err == nil {
		return details, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	record, err := c.provider.Detail(ctx, externalId, mediaType)
	if err != nil {
		// Detail pages fail loud, they do not degrade to placeholders.
		c.logger.Debug("Provider detail miss", zap.String("externalId", externalId), zap.Error(err))
		return nil, ErrNotFound
	}
	item := model.ItemFromProviderRecord(record, mediaType)
	item.ExternalId = externalId
	return &model.ItemDetails{Item: item}, nil
}

// GetPerson returns a person record from the provider.
func (c *Controller) GetPerson(ctx context.Context, externalId string) (*model.Person, error) {
	p, err := c.provider.Person(ctx, externalId)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Popular returns one page of popular items. The page may be degraded,
// it is never an error.
func (c *Controller) Popular(ctx context.Context, mediaType model.MediaType, page int) (*model.SearchPage, error) {
	p, err := c.provider.Popular(ctx, mediaType, page)
	if err != nil {
		return nil, err
	}
	return itemsPage(p, mediaType), nil
}

// TopRated returns one page of top rated movies. The page may be
// degraded, it is never an error.
func (c *Controller) TopRated(ctx context.Context, page int) (*model.SearchPage, error) {
	p, err := c.provider.TopRated(ctx, page)
	if err != nil {
		return nil, err
	}
	return itemsPage(p, model.MediaTypeMovie), nil
}

// Search issues one provider search call and partitions the
// heterogeneous results into items and people. The pagination envelope
// passes through unchanged: for the multi kind the local arrays are
// filtered, so callers must not relate len(Items) to TotalResults.
func (c *Controller) Search(ctx context.Context, query string, page int, kind model.SearchKind) (*model.SearchPage, error) {
	raw, err := c.provider.Search(ctx, query, page, kind)
	if err != nil {
		return nil, err
	}
	res := &model.SearchPage{
		Items:        []model.CatalogItem{},
		People:       []model.Person{},
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
		Degraded:     raw.Degraded,
	}
	for i := range raw.Results {
		r := &raw.Results[i]
		if kind == model.SearchKindPerson || r.MediaType == string(model.MediaTypePerson) {
			res.People = append(res.People, model.PersonFromProviderRecord(r))
			continue
		}
		// Movies, shows and untagged legacy entries are all items.
		res.Items = append(res.Items, model.ItemFromProviderRecord(r, model.MediaTypeMovie))
	}
	return res, nil
}

// itemsPage normalizes a raw listing page into item results.
func itemsPage(raw *model.ProviderPage, mediaType model.MediaType) *model.SearchPage {
	res := &model.SearchPage{
		Items:        make([]model.CatalogItem, 0, len(raw.Results)),
		People:       []model.Person{},
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
		Degraded:     raw.Degraded,
	}
	for i := range raw.Results {
		res.Items = append(res.Items, model.ItemFromProviderRecord(&raw.Results[i], mediaType))
	}
	return res
}
