package list

import (
	"context"
	"errors"
	"mcatalog/catalog/internal/repository"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/logging"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a rated or removed item does not exist
// in the local store.
var ErrNotFound = errors.New("catalog item not found")

// ErrAlreadyInList is returned when the user already has the item on
// their list.
var ErrAlreadyInList = errors.New("item already in list")

// ErrInvalidValue is returned when a rating value is out of range.
var ErrInvalidValue = errors.New("rating value out of range")

const defaultContributorLimit = 10

type listRepository interface {
	EnsureItem(ctx context.Context, seed *model.ItemSeed) (int64, error)
	GetItemId(ctx context.Context, externalId string) (int64, error)
	GetListEntry(ctx context.Context, userId model.UserId, itemId int64) (*model.ListEntry, error)
	AddListEntry(ctx context.Context, userId model.UserId, itemId int64) error
	RemoveListEntry(ctx context.Context, userId model.UserId, externalId string) error
	UpsertRating(ctx context.Context, userId model.UserId, itemId int64, value model.RatingValue) error
	ListForUser(ctx context.Context, userId model.UserId) ([]model.ListEntryView, error)
	TopContributors(ctx context.Context, limit int) ([]model.Contributor, error)
}

type ratingIngester interface {
	Ingest(ctx context.Context) (chan model.RatingEvent, error)
}

// Controller defines a list and rating management controller.
type Controller struct {
	repo     listRepository
	ingester ratingIngester
	logger   *zap.Logger
}

// New creates a list controller. The ingester may be nil when event
// ingestion is disabled.
func New(repo listRepository, ingester ratingIngester, logger *zap.Logger) *Controller {
	logger = logger.With(zap.String(logging.FieldComponent, "list-controller"))
	return &Controller{repo: repo, ingester: ingester, logger: logger}
}

// AddToList puts an item on the user's list, persisting the item row on
// first contact. The uniqueness constraint on (user, item) is the
// source of truth: the pre-check only avoids the common duplicate
// insert, a concurrent add racing past it still resolves to
// ErrAlreadyInList through the constraint violation.
func (c *Controller) AddToList(ctx context.Context, userId model.UserId, seed *model.ItemSeed) error {
	itemId, err := c.repo.EnsureItem(ctx, seed)
	if err != nil {
		return err
	}
	if _, err := c.repo.GetListEntry(ctx, userId, itemId); err == nil {
		return ErrAlreadyInList
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err := c.repo.AddListEntry(ctx, userId, itemId); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyInList
		}
		return err
	}
	return nil
}

// RemoveFromList takes an item off the user's list. Removing an absent
// entry, or an item never seen, succeeds.
func (c *Controller) RemoveFromList(ctx context.Context, userId model.UserId, externalId string) error {
	return c.repo.RemoveListEntry(ctx, userId, externalId)
}

// Rate records the user's rating for a stored item, replacing any
// previous value. Rating an item absent from the store is ErrNotFound;
// ratings never create item rows.
func (c *Controller) Rate(ctx context.Context, userId model.UserId, externalId string, value model.RatingValue) error {
	if !value.Valid() {
		return ErrInvalidValue
	}
	itemId, err := c.repo.GetItemId(ctx, externalId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return c.repo.UpsertRating(ctx, userId, itemId, value)
}

// ListForUser returns the user's list with their own ratings attached.
// Legacy stores can hold distinct item rows sharing an external id, so
// entries are collapsed per external id, preferring a rated entry over
// an unrated one and keeping the earliest otherwise.
func (c *Controller) ListForUser(ctx context.Context, userId model.UserId) ([]model.ListEntryView, error) {
	entries, err := c.repo.ListForUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return collapseByExternalId(entries), nil
}

func collapseByExternalId(entries []model.ListEntryView) []model.ListEntryView {
	seen := make(map[string]int, len(entries))
	res := make([]model.ListEntryView, 0, len(entries))
	for _, e := range entries {
		idx, ok := seen[e.Item.ExternalId]
		if !ok {
			seen[e.Item.ExternalId] = len(res)
			res = append(res, e)
			continue
		}
		if res[idx].Rating == nil && e.Rating != nil {
			res[idx] = e
		}
	}
	return res
}

// TopContributors returns up to limit contributors ordered by distinct
// list-entry count. A non-positive limit falls back to the default.
func (c *Controller) TopContributors(ctx context.Context, limit int) ([]model.Contributor, error) {
	if limit <= 0 {
		limit = defaultContributorLimit
	}
	return c.repo.TopContributors(ctx, limit)
}

// StartIngestion consumes rating events and applies put events as
// rating upserts. It blocks until the channel closes or ctx is done.
func (c *Controller) StartIngestion(ctx context.Context) error {
	ch, err := c.ingester.Ingest(ctx)
	if err != nil {
		return err
	}
	for e := range ch {
		if e.EventType != model.RatingEventTypePut {
			continue
		}
		if err := c.Rate(ctx, e.UserId, e.ExternalId, e.Value); err != nil {
			c.logger.Error("Failed to apply rating event",
				zap.String(logging.FieldUserId, string(e.UserId)),
				zap.String(logging.FieldItemId, e.ExternalId),
				zap.Error(err))
		}
	}
	return nil
}
