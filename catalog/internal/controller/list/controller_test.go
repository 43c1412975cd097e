package list

import (
	"context"
	"errors"
	"mcatalog/catalog/internal/repository"
	"mcatalog/catalog/pkg/model"
	"testing"
	"time"

	gen "mcatalog/gen/mock/list/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type staticIngester struct {
	events []model.RatingEvent
}

func (i *staticIngester) Ingest(_ context.Context) (chan model.RatingEvent, error) {
	ch := make(chan model.RatingEvent, len(i.events))
	for _, e := range i.events {
		ch <- e
	}
	close(ch)
	return ch, nil
}

func TestAddToList(t *testing.T) {
	seed := &model.ItemSeed{ExternalId: "603", Title: "The Matrix"}

	tests := []struct {
		name        string
		entryErr    error
		addCall     bool
		addErr      error
		wantErr     error
	}{
		{
			name:     "first add",
			entryErr: repository.ErrNotFound,
			addCall:  true,
		},
		{
			name:    "pre-check catches repeat add",
			wantErr: ErrAlreadyInList,
		},
		{
			name:     "constraint catches racing add",
			entryErr: repository.ErrNotFound,
			addCall:  true,
			addErr:   repository.ErrDuplicate,
			wantErr:  ErrAlreadyInList,
		},
		{
			name:     "insert failure propagates",
			entryErr: repository.ErrNotFound,
			addCall:  true,
			addErr:   errors.New("connection refused"),
			wantErr:  errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repoMock := gen.NewMocklistRepository(ctrl)
			c := New(repoMock, nil, zap.NewNop())
			ctx := context.Background()

			repoMock.EXPECT().EnsureItem(ctx, seed).Return(int64(1), nil)
			var entry *model.ListEntry
			if tt.entryErr == nil {
				entry = &model.ListEntry{UserId: "alice", ItemId: 1}
			}
			repoMock.EXPECT().GetListEntry(ctx, model.UserId("alice"), int64(1)).Return(entry, tt.entryErr)
			if tt.addCall {
				repoMock.EXPECT().AddListEntry(ctx, model.UserId("alice"), int64(1)).Return(tt.addErr)
			}

			err := c.AddToList(ctx, "alice", seed)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRemoveFromListIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repoMock := gen.NewMocklistRepository(ctrl)
	c := New(repoMock, nil, zap.NewNop())
	ctx := context.Background()

	repoMock.EXPECT().RemoveListEntry(ctx, model.UserId("alice"), "603").Return(nil).Times(2)
	assert.NoError(t, c.RemoveFromList(ctx, "alice", "603"))
	assert.NoError(t, c.RemoveFromList(ctx, "alice", "603"))
}

func TestRate(t *testing.T) {
	tests := []struct {
		name       string
		value      model.RatingValue
		lookupCall bool
		lookupErr  error
		upsertCall bool
		wantErr    error
	}{
		{
			name:       "valid rating",
			value:      80,
			lookupCall: true,
			upsertCall: true,
		},
		{
			name:       "boundary values accepted",
			value:      0,
			lookupCall: true,
			upsertCall: true,
		},
		{
			name:    "value above range",
			value:   101,
			wantErr: ErrInvalidValue,
		},
		{
			name:       "unknown item",
			value:      50,
			lookupCall: true,
			lookupErr:  repository.ErrNotFound,
			wantErr:    ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repoMock := gen.NewMocklistRepository(ctrl)
			c := New(repoMock, nil, zap.NewNop())
			ctx := context.Background()

			if tt.lookupCall {
				repoMock.EXPECT().GetItemId(ctx, "603").Return(int64(1), tt.lookupErr)
			}
			if tt.upsertCall {
				repoMock.EXPECT().UpsertRating(ctx, model.UserId("alice"), int64(1), tt.value).Return(nil)
			}

			err := c.Rate(ctx, "alice", "603", tt.value)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestListForUserCollapsesDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repoMock := gen.NewMocklistRepository(ctrl)
	c := New(repoMock, nil, zap.NewNop())
	ctx := context.Background()

	rated := model.RatingValue(90)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repoMock.EXPECT().ListForUser(ctx, model.UserId("alice")).Return([]model.ListEntryView{
		{Item: model.CatalogItem{Id: 1, ExternalId: "603", Title: "The Matrix"}, AddedAt: t0},
		{Item: model.CatalogItem{Id: 5, ExternalId: "27205", Title: "Inception"}, AddedAt: t0.Add(time.Hour)},
		{Item: model.CatalogItem{Id: 9, ExternalId: "603", Title: "The Matrix"}, AddedAt: t0.Add(2 * time.Hour), Rating: &rated},
	}, nil)

	entries, err := c.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// The rated duplicate replaces the unrated one, order is kept.
	assert.Equal(t, "603", entries[0].Item.ExternalId)
	require.NotNil(t, entries[0].Rating)
	assert.Equal(t, rated, *entries[0].Rating)
	assert.Equal(t, "27205", entries[1].Item.ExternalId)
}

func TestListForUserKeepsFirstWhenNeitherRated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repoMock := gen.NewMocklistRepository(ctrl)
	c := New(repoMock, nil, zap.NewNop())
	ctx := context.Background()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repoMock.EXPECT().ListForUser(ctx, model.UserId("alice")).Return([]model.ListEntryView{
		{Item: model.CatalogItem{Id: 1, ExternalId: "603"}, AddedAt: t0},
		{Item: model.CatalogItem{Id: 9, ExternalId: "603"}, AddedAt: t0.Add(time.Hour)},
	}, nil)

	entries, err := c.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].Item.Id)
}

func TestTopContributorsDefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repoMock := gen.NewMocklistRepository(ctrl)
	c := New(repoMock, nil, zap.NewNop())
	ctx := context.Background()

	want := []model.Contributor{{UserId: "alice", ListCount: 2}}
	repoMock.EXPECT().TopContributors(ctx, 10).Return(want, nil)
	res, err := c.TopContributors(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, want, res)

	repoMock.EXPECT().TopContributors(ctx, 3).Return(want, nil)
	_, err = c.TopContributors(ctx, 3)
	assert.NoError(t, err)
}

func TestStartIngestionAppliesPutEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repoMock := gen.NewMocklistRepository(ctrl)
	ingester := &staticIngester{events: []model.RatingEvent{
		{UserId: "alice", ExternalId: "603", Value: 85, EventType: model.RatingEventTypePut},
		{UserId: "alice", ExternalId: "603", EventType: model.RatingEventTypeDelete},
		{UserId: "bob", ExternalId: "27205", Value: 70, EventType: model.RatingEventTypePut},
	}}
	c := New(repoMock, ingester, zap.NewNop())
	ctx := context.Background()

	repoMock.EXPECT().GetItemId(ctx, "603").Return(int64(1), nil)
	repoMock.EXPECT().UpsertRating(ctx, model.UserId("alice"), int64(1), model.RatingValue(85)).Return(nil)
	repoMock.EXPECT().GetItemId(ctx, "27205").Return(int64(2), nil)
	repoMock.EXPECT().UpsertRating(ctx, model.UserId("bob"), int64(2), model.RatingValue(70)).Return(nil)

	require.NoError(t, c.StartIngestion(ctx))
}
