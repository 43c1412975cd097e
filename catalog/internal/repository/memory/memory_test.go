package memory

import (
	"context"
	"mcatalog/catalog/internal/repository"
	"mcatalog/catalog/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seed(externalId, title string) *model.ItemSeed {
	return &model.ItemSeed{ExternalId: externalId, Title: title, MediaType: model.MediaTypeMovie}
}

func TestEnsureItemIdempotent(t *testing.T) {
	r := New(zap.NewNop())
	ctx := context.Background()

	first, err := r.EnsureItem(ctx, seed("603", "The Matrix"))
	require.NoError(t, err)
	second, err := r.EnsureItem(ctx, seed("603", "The Matrix Reloaded"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	d, err := r.GetItemByExternalId(ctx, "603")
	require.NoError(t, err)
	// First write wins, the seed is not re-applied.
	assert.Equal(t, "The Matrix", d.Item.Title)
}

func TestAddListEntryDuplicate(t *testing.T) {
	r := New(zap.NewNop())
	ctx := context.Background()
	itemId, err := r.EnsureItem(ctx, seed("603", "The Matrix"))
	require.NoError(t, err)

	require.NoError(t, r.AddListEntry(ctx, "alice", itemId))
	assert.ErrorIs(t, r.AddListEntry(ctx, "alice", itemId), repository.ErrDuplicate)

	entries, err := r.ListForUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRemoveListEntryIdempotent(t *testing.T) {
	r := New(zap.NewNop())
	ctx := context.Background()
	itemId, err := r.EnsureItem(ctx, seed("603", "The Matrix"))
	require.NoError(t, err)
	require.NoError(t, r.AddListEntry(ctx, "alice", itemId))

	require.NoError(t, r.RemoveListEntry(ctx, "alice", "603"))
	require.NoError(t, r.RemoveListEntry(ctx, "alice", "603"))
	require.NoError(t, r.RemoveListEntry(ctx, "alice", "never-added"))

	entries, err := r.ListForUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpsertRatingUpdatesInPlace(t *testing.T) {
	r := New(zap.NewNop())
	ctx := context.Background()
	itemId, err := r.EnsureItem(ctx, seed("603", "The Matrix"))
	require.NoError(t, err)
	require.NoError(t, r.AddListEntry(ctx, "alice", itemId))

	require.NoError(t, r.UpsertRating(ctx, "alice", itemId, 80))
	require.NoError(t, r.UpsertRating(ctx, "alice", itemId, 40))

	d, err := r.GetItemByExternalId(ctx, "603")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.RatingCount)
	require.NotNil(t, d.Rating)
	assert.Equal(t, float64(40), *d.Rating)

	entries, err := r.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Rating)
	assert.Equal(t, model.RatingValue(40), *entries[0].Rating)
}

func TestAggregatedRatingAcrossUsers(t *testing.T) {
	r := New(zap.NewNop())
	ctx := context.Background()
	itemId, err := r.EnsureItem(ctx, seed("603", "The Matrix"))
	require.NoError(t, err)

	require.NoError(t, r.UpsertRating(ctx, "alice", itemId, 100))
	require.NoError(t, r.UpsertRating(ctx, "bob", itemId, 50))

	d, err := r.GetItemByExternalId(ctx, "603")
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.RatingCount)
	require.NotNil(t, d.Rating)
	assert.Equal(t, float64(75), *d.Rating)
}

func TestTopContributors(t *testing.T) {
	r := New(zap.NewNop())
	ctx := context.Background()

	matrix, err := r.EnsureItem(ctx, seed("603", "The Matrix"))
	require.NoError(t, err)
	inception, err := r.EnsureItem(ctx, seed("27205", "Inception"))
	require.NoError(t, err)

	require.NoError(t, r.AddListEntry(ctx, "alice", matrix))
	require.NoError(t, r.AddListEntry(ctx, "alice", inception))
	require.NoError(t, r.AddListEntry(ctx, "bob", matrix))
	require.NoError(t, r.UpsertRating(ctx, "bob", matrix, 90))

	contributors, err := r.TopContributors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, contributors, 2)
	assert.Equal(t, model.Contributor{UserId: "alice", ListCount: 2, RatingCount: 0}, contributors[0])
	assert.Equal(t, model.Contributor{UserId: "bob", ListCount: 1, RatingCount: 1}, contributors[1])

	top1, err := r.TopContributors(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, model.UserId("alice"), top1[0].UserId)
}

func TestGetItemByExternalIdNotFound(t *testing.T) {
	r := New(zap.NewNop())
	_, err := r.GetItemByExternalId(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
