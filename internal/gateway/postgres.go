package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/emilythestrangee/nexus/backend/internal/models"
)

// PostgresGateway queries the backend's tables directly through gorm.
type PostgresGateway struct {
	db *gorm.DB
}

func NewPostgresGateway(db *gorm.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

func (g *PostgresGateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return wrapDBError(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (g *PostgresGateway) List(ctx context.Context, res models.Resource, category string) ([]models.Row, error) {
	q := g.table(ctx, res)
	if !models.IsAllCategory(category) {
		q = q.Where("category = ?", category)
	}
	return g.find(q.Order("created_at DESC"))
}

func (g *PostgresGateway) Search(ctx context.Context, res models.Resource, text string) ([]models.Row, error) {
	if strings.TrimSpace(text) == "" {
		return g.List(ctx, res, "")
	}

	pattern := "%" + escapeLike(text) + "%"
	cond := fmt.Sprintf(`title ILIKE ? ESCAPE '\' OR %s ILIKE ? ESCAPE '\'`, pq.QuoteIdentifier(res.TextColumn))
	return g.find(g.table(ctx, res).Where(cond, pattern, pattern).Order("created_at DESC"))
}

func (g *PostgresGateway) GetByID(ctx context.Context, res models.Resource, id string) (models.Row, error) {
	// Compare as text so ids stay opaque whatever the column type is.
	rows, err := g.find(g.table(ctx, res).Where("id::text = ?", id).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %q: %w", res.Name, id, ErrNotFound)
	}
	return rows[0], nil
}

func (g *PostgresGateway) table(ctx context.Context, res models.Resource) *gorm.DB {
	return g.db.WithContext(ctx).Table(pq.QuoteIdentifier(res.Table))
}

func (g *PostgresGateway) find(q *gorm.DB) ([]models.Row, error) {
	var results []map[string]any
	if err := q.Find(&results).Error; err != nil {
		return nil, wrapDBError(err)
	}

	rows := make([]models.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, models.Row(r))
	}
	return rows, nil
}

func wrapDBError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &BackendError{
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Hint:    pgErr.Hint,
			Err:     err,
		}
	}
	return &BackendError{Message: err.Error(), Err: err}
}
