package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mcatalog/catalog/configs"
	"mcatalog/catalog/internal/repository"
	"mcatalog/catalog/pkg/model"
	"mcatalog/pkg/logging"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const tracerId = "catalog-repository-mysql"

// mysqlErrDuplicateEntry is the server error code for a violated
// uniqueness constraint.
const mysqlErrDuplicateEntry = 1062

// Repository defines a MySQL-based catalog repository over the
// catalog_items, list_entries and ratings tables. Uniqueness of
// catalog_items.external_id and of (user_id, item_id) in both
// list_entries and ratings is enforced by the schema; a duplicate-key
// error on insert is the canonical "already exists" signal.
type Repository struct {
	db          *sql.DB
	waitTimeout time.Duration
	logger      *zap.Logger
}

// New creates a new MySQL-based catalog repository.
func New(config configs.MysqlConfig, logger *zap.Logger) (*Repository, error) {
	logger = logger.With(
		zap.String(logging.FieldComponent, "repository"),
		zap.String(logging.FieldType, "mysql"),
	)
	logger.Info("Connecting to mysql")
	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", config.User, config.Pass, config.Host, config.Port, config.Name))
	if err != nil {
		return nil, err
	}
	// Bounded pool: callers block waiting for a free connection, up to
	// the wait timeout applied per operation.
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	return &Repository{
		db:          db,
		waitTimeout: time.Duration(config.WaitTimeoutSeconds) * time.Second,
		logger:      logger,
	}, nil
}

// opContext bounds one store operation, including the time spent
// waiting for a pooled connection.
func (r *Repository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.waitTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.waitTimeout)
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}

const itemDetailsQuery = `
SELECT i.id, i.external_id, i.title, i.poster_path, i.overview, i.release_date, i.vote_average, i.media_type,
       AVG(r.value), COUNT(r.value)
FROM catalog_items i
LEFT JOIN ratings r ON r.item_id = i.id
WHERE i.external_id = ?
GROUP BY i.id
ORDER BY i.id
LIMIT 1`

// GetItemByExternalId retrieves a locally stored item together with
// the aggregated rating of its Rating rows.
func (r *Repository) GetItemByExternalId(ctx context.Context, externalId string) (*model.ItemDetails, error) {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/GetItemByExternalId")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var d model.ItemDetails
	var avg sql.NullFloat64
	row := r.db.QueryRowContext(ctx, itemDetailsQuery, externalId)
	if err := row.Scan(
		&d.Item.Id, &d.Item.ExternalId, &d.Item.Title, &d.Item.PosterPath,
		&d.Item.Overview, &d.Item.ReleaseDate, &d.Item.VoteAverage, &d.Item.MediaType,
		&avg, &d.RatingCount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		r.logger.Warn("Failed to get item from MySQL", zap.String("externalId", externalId), zap.Error(err))
		return nil, err
	}
	if avg.Valid {
		d.Rating = &avg.Float64
	}
	return &d, nil
}

// GetItemId resolves an external id to the local item id.
func (r *Repository) GetItemId(ctx context.Context, externalId string) (int64, error) {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/GetItemId")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var id int64
	row := r.db.QueryRowContext(ctx, "SELECT id FROM catalog_items WHERE external_id = ? ORDER BY id LIMIT 1", externalId)
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// EnsureItem inserts a catalog item from add-time seed fields and
// returns its id. A concurrent insert of the same external id resolves
// to the existing row, making the call idempotent.
func (r *Repository) EnsureItem(ctx context.Context, seed *model.ItemSeed) (int64, error) {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/EnsureItem")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	mediaType := seed.MediaType
	if mediaType != model.MediaTypeTv {
		mediaType = model.MediaTypeMovie
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO catalog_items (external_id, title, poster_path, overview, release_date, vote_average, media_type) VALUES (?, ?, ?, ?, ?, ?, ?)",
		seed.ExternalId, seed.Title, seed.PosterPath, seed.Overview, seed.ReleaseDate, seed.VoteAverage, mediaType)
	if err != nil {
		if isDuplicateEntry(err) {
			return r.GetItemId(ctx, seed.ExternalId)
		}
		r.logger.Warn("Failed to insert item to MySQL", zap.String("externalId", seed.ExternalId), zap.Error(err))
		return 0, err
	}
	return res.LastInsertId()
}

// GetListEntry retrieves a user's membership record for an item.
func (r *Repository) GetListEntry(ctx context.Context, userId model.UserId, itemId int64) (*model.ListEntry, error) {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/GetListEntry")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	entry := model.ListEntry{UserId: userId, ItemId: itemId}
	row := r.db.QueryRowContext(ctx, "SELECT added_at FROM list_entries WHERE user_id = ? AND item_id = ?", userId, itemId)
	if err := row.Scan(&entry.AddedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// AddListEntry inserts a membership record. A violated
// (user_id, item_id) constraint maps to repository.ErrDuplicate.
func (r *Repository) AddListEntry(ctx context.Context, userId model.UserId, itemId int64) error {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/AddListEntry")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, "INSERT INTO list_entries (user_id, item_id, added_at) VALUES (?, ?, NOW())", userId, itemId)
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicate
		}
		r.logger.Warn("Failed to insert list entry to MySQL", zap.String(logging.FieldUserId, string(userId)), zap.Int64(logging.FieldItemId, itemId), zap.Error(err))
		return err
	}
	return nil
}

// RemoveListEntry deletes a membership record by external id. Absence
// is not an error.
func (r *Repository) RemoveListEntry(ctx context.Context, userId model.UserId, externalId string) error {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/RemoveListEntry")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		"DELETE le FROM list_entries le JOIN catalog_items i ON i.id = le.item_id WHERE le.user_id = ? AND i.external_id = ?",
		userId, externalId)
	if err != nil {
		r.logger.Warn("Failed to delete list entry from MySQL", zap.String(logging.FieldUserId, string(userId)), zap.Error(err))
	}
	return err
}

// UpsertRating inserts a rating or updates the existing row for the
// (user, item) pair in place.
func (r *Repository) UpsertRating(ctx context.Context, userId model.UserId, itemId int64, value model.RatingValue) error {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/UpsertRating")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO ratings (user_id, item_id, value, rated_at) VALUES (?, ?, ?, NOW()) ON DUPLICATE KEY UPDATE value = VALUES(value), rated_at = NOW()",
		userId, itemId, value)
	if err != nil {
		r.logger.Warn("Failed to upsert rating to MySQL", zap.String(logging.FieldUserId, string(userId)), zap.Int64(logging.FieldItemId, itemId), zap.Error(err))
	}
	return err
}

const listForUserQuery = `
SELECT i.id, i.external_id, i.title, i.poster_path, i.overview, i.release_date, i.vote_average, i.media_type,
       le.added_at, r.value
FROM list_entries le
JOIN catalog_items i ON i.id = le.item_id
LEFT JOIN ratings r ON r.item_id = le.item_id AND r.user_id = le.user_id
WHERE le.user_id = ?
ORDER BY le.added_at`

// ListForUser retrieves the user's list entries joined with their
// items and, when present, the user's own rating for each item.
func (r *Repository) ListForUser(ctx context.Context, userId model.UserId) ([]model.ListEntryView, error) {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/ListForUser")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listForUserQuery, userId)
	if err != nil {
		r.logger.Warn("Failed to get list from MySQL", zap.String(logging.FieldUserId, string(userId)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	var res []model.ListEntryView
	for rows.Next() {
		var v model.ListEntryView
		var value sql.NullInt64
		if err := rows.Scan(
			&v.Item.Id, &v.Item.ExternalId, &v.Item.Title, &v.Item.PosterPath,
			&v.Item.Overview, &v.Item.ReleaseDate, &v.Item.VoteAverage, &v.Item.MediaType,
			&v.AddedAt, &value,
		); err != nil {
			return nil, err
		}
		if value.Valid {
			rv := model.RatingValue(value.Int64)
			v.Rating = &rv
		}
		res = append(res, v)
	}
	return res, rows.Err()
}

const topContributorsQuery = `
SELECT u.user_id, COUNT(DISTINCT le.item_id), COUNT(DISTINCT r.item_id)
FROM (SELECT user_id FROM list_entries UNION SELECT user_id FROM ratings) u
LEFT JOIN list_entries le ON le.user_id = u.user_id
LEFT JOIN ratings r ON r.user_id = u.user_id
GROUP BY u.user_id
ORDER BY COUNT(DISTINCT le.item_id) DESC
LIMIT ?`

// TopContributors aggregates distinct-item counts per user, ordered
// by list-entry count. Ties keep the scan order, no secondary key.
func (r *Repository) TopContributors(ctx context.Context, limit int) ([]model.Contributor, error) {
	ctx, span := otel.Tracer(tracerId).Start(ctx, "Repository/TopContributors")
	defer span.End()
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, topContributorsQuery, limit)
	if err != nil {
		r.logger.Warn("Failed to get contributors from MySQL", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	var res []model.Contributor
	for rows.Next() {
		var c model.Contributor
		if err := rows.Scan(&c.UserId, &c.ListCount, &c.RatingCount); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}
