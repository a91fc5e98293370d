package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/db"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/logger"
)

// CounterRepository allocates monotonically increasing numbers per key
type CounterRepository interface {
	// NextSequence increments the counter and returns the new value.
	// It makes one attempt; failures return apperrors.ErrSequenceUnavailable.
	NextSequence(ctx context.Context, key string) (int64, error)
}

// ChapterCounterKey numbers the chapters of a course
func ChapterCounterKey(courseID int64) string {
	return fmt.Sprintf("chapter:%d", courseID)
}

// SeriesCounterKey numbers the series of one type within a course
func SeriesCounterKey(courseID int64, t models.SeriesType) string {
	return fmt.Sprintf("series:%d:%s", courseID, t)
}

// CourseCounterKey numbers course codes sharing a prefix
func CourseCounterKey(prefix string) string {
	return "course:" + strings.ToUpper(prefix)
}

type postgresCounterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresCounterRepository creates a counter repository over the counters table
func NewPostgresCounterRepository(pool *pgxpool.Pool) CounterRepository {
	return &postgresCounterRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *postgresCounterRepository) NextSequence(ctx context.Context, key string) (int64, error) {
	sql, args, err := r.sb.Insert("counters").
		Columns("key", "value", "updated_at").
		Values(key, 1, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = counters.value + 1, updated_at = NOW() RETURNING value").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build counter query: %w", err)
	}

	var value int64
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, sql, args...).Scan(&value)
	})
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Counter transaction failed")
		return 0, fmt.Errorf("%w: %v", apperrors.ErrSequenceUnavailable, err)
	}
	return value, nil
}

type memoryCounterRepository struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewMemoryCounterRepository creates an in-memory counter repository
func NewMemoryCounterRepository() CounterRepository {
	return &memoryCounterRepository{values: make(map[string]int64)}
}

func (r *memoryCounterRepository) NextSequence(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrSequenceUnavailable, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key]++
	return r.values[key], nil
}
