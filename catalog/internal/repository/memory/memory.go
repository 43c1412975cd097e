package memory

import (
	"context"
	"mcatalog/catalog/internal/repository"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/logging"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerId = "catalog-repository-memory"

// Repository defines an in-memory catalog repository. It mirrors the
// MySQL repository semantics, including uniqueness enforcement, and
// backs tests and the integration setup.
type Repository struct {
	sync.RWMutex
	items     []*model.CatalogItem
	entries   map[model.UserId]map[int64]*model.ListEntry
	ratings   map[model.UserId]map[int64]*model.Rating
	userOrder []model.UserId
	nextId    int64
	logger    *zap.Logger
}

// New creates a new memory repository.
func New(logger *zap.Logger) *Repository {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "memory"),
	)
	return &Repository{
		entries: map[model.UserId]map[int64]*model.ListEntry{},
		ratings: map[model.UserId]map[int64]*model.Rating{},
		logger:  logger,
	}
}

func (r *Repository) itemByExternalId(externalId string) *model.CatalogItem {
	for _, i := range r.items {
		if i.ExternalId == externalId {
			return i
		}
	}
	return nil
}

func (r *Repository) touchUser(userId model.UserId) {
	for _, u := range r.userOrder {
		if u == userId {
			return
		}
	}
	r.userOrder = append(r.userOrder, userId)
}

// GetItemByExternalId retrieves a stored item with its aggregated rating.
func (r *Repository) GetItemByExternalId(ctx context.Context, externalId string) (*model.ItemDetails, error) {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/GetItemByExternalId")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	item := r.itemByExternalId(externalId)
	if item == nil {
		return nil, repository.ErrNotFound
	}
	d := model.ItemDetails{Item: *item}
	var sum float64
	for _, userRatings := range r.ratings {
		if rating, ok := userRatings[item.Id]; ok {
			sum += float64(rating.Value)
			d.RatingCount++
		}
	}
	if d.RatingCount > 0 {
		avg := sum / float64(d.RatingCount)
		d.Rating = &avg
	}
	return &d, nil
}

// GetItemId resolves an external id to the local item id.
func (r *Repository) GetItemId(ctx context.Context, externalId string) (int64, error) {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/GetItemId")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	if item := r.itemByExternalId(externalId); item != nil {
		return item.Id, nil
	}
	return 0, repository.ErrNotFound
}

// EnsureItem inserts an item from seed fields, resolving a duplicate
// external id to the existing row.
func (r *Repository) EnsureItem(ctx context.Context, seed *model.ItemSeed) (int64, error) {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/EnsureItem")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	if item := r.itemByExternalId(seed.ExternalId); item != nil {
		return item.Id, nil
	}
	mediaType := seed.MediaType
	if mediaType != model.MediaTypeTv {
		mediaType = model.MediaTypeMovie
	}
	r.nextId++
	item := &model.CatalogItem{
		Id:          r.nextId,
		ExternalId:  seed.ExternalId,
		Title:       seed.Title,
		PosterPath:  seed.PosterPath,
		Overview:    seed.Overview,
		ReleaseDate: seed.ReleaseDate,
		VoteAverage: seed.VoteAverage,
		MediaType:   mediaType,
	}
	r.items = append(r.items, item)
	return item.Id, nil
}

// GetListEntry retrieves a user's membership record for an item.
func (r *Repository) GetListEntry(ctx context.Context, userId model.UserId, itemId int64) (*model.ListEntry, error) {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/GetListEntry")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	if entry, ok := r.entries[userId][itemId]; ok {
		return entry, nil
	}
	return nil, repository.ErrNotFound
}

// AddListEntry inserts a membership record, or returns
// repository.ErrDuplicate when the (user, item) pair already exists.
func (r *Repository) AddListEntry(ctx context.Context, userId model.UserId, itemId int64) error {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/AddListEntry")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	if _, ok := r.entries[userId][itemId]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.entries[userId]; !ok {
		r.entries[userId] = map[int64]*model.ListEntry{}
	}
	r.entries[userId][itemId] = &model.ListEntry{UserId: userId, ItemId: itemId, AddedAt: time.Now()}
	r.touchUser(userId)
	return nil
}

// RemoveListEntry deletes a membership record by external id. Absence
// is not an error.
func (r *Repository) RemoveListEntry(ctx context.Context, userId model.UserId, externalId string) error {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/RemoveListEntry")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	item := r.itemByExternalId(externalId)
	if item == nil {
		return nil
	}
	delete(r.entries[userId], item.Id)
	return nil
}

// UpsertRating inserts a rating or updates the existing row in place.
func (r *Repository) UpsertRating(ctx context.Context, userId model.UserId, itemId int64, value model.RatingValue) error {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/UpsertRating")
	defer span.End()
	r.Lock()
	defer r.Unlock()
	if _, ok := r.ratings[userId]; !ok {
		r.ratings[userId] = map[int64]*model.Rating{}
	}
	r.ratings[userId][itemId] = &model.Rating{UserId: userId, ItemId: itemId, Value: value, RatedAt: time.Now()}
	r.touchUser(userId)
	return nil
}

// ListForUser retrieves the user's entries joined with their items and
// the user's own ratings.
func (r *Repository) ListForUser(ctx context.Context, userId model.UserId) ([]model.ListEntryView, error) {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/ListForUser")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	var res []model.ListEntryView
	for _, item := range r.items {
		entry, ok := r.entries[userId][item.Id]
		if !ok {
			continue
		}
		v := model.ListEntryView{Item: *item, AddedAt: entry.AddedAt}
		if rating, ok := r.ratings[userId][item.Id]; ok {
			value := rating.Value
			v.Rating = &value
		}
		res = append(res, v)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].AddedAt.Before(res[j].AddedAt) })
	return res, nil
}

// TopContributors aggregates distinct-item counts per user, ordered by
// list-entry count. Ties keep arrival order.
func (r *Repository) TopContributors(ctx context.Context, limit int) ([]model.Contributor, error) {
	_, span := otel.Tracer(tracerId).Start(ctx, "Repository/TopContributors")
	defer span.End()
	r.RLock()
	defer r.RUnlock()
	res := make([]model.Contributor, 0, len(r.userOrder))
	for _, userId := range r.userOrder {
		res = append(res, model.Contributor{
			UserId:      userId,
			ListCount:   int64(len(r.entries[userId])),
			RatingCount: int64(len(r.ratings[userId])),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].ListCount > res[j].ListCount })
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}
