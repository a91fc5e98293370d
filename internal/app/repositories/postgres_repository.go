package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/dberrors"
	"github.com/yigit/uniportal/internal/pkg/logger"
)

// PostgresRepository implements Repository over one table with squirrel and pgx
type PostgresRepository[T any] struct {
	db    *pgxpool.Pool
	sb    squirrel.StatementBuilderType
	table *Table[T]
}

// NewPostgresRepository creates a repository for the given table
func NewPostgresRepository[T any](db *pgxpool.Pool, table *Table[T]) *PostgresRepository[T] {
	return &PostgresRepository[T]{
		db:    db,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		table: table,
	}
}

func (r *PostgresRepository[T]) selectQuery() squirrel.SelectBuilder {
	return r.sb.Select(r.table.selectColumns()...).From(r.table.Name).OrderBy(r.table.OrderBy...)
}

// list runs a select and scans every row
func (r *PostgresRepository[T]) list(ctx context.Context, query squirrel.SelectBuilder) ([]*T, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.Name).Msg("Error building list SQL")
		return nil, fmt.Errorf("failed to build %s list query: %w", r.table.Entity, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.Name).Msg("Error executing list query")
		return nil, fmt.Errorf("error listing %s: %w", r.table.Entity, err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item, err := r.table.Scan(rows)
		if err != nil {
			logger.Error().Err(err).Str("table", r.table.Name).Msg("Error scanning row")
			return nil, fmt.Errorf("error scanning %s: %w", r.table.Entity, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", r.table.Entity, err)
	}
	return items, nil
}

// FindOne returns the single record matching where
func (r *PostgresRepository[T]) FindOne(ctx context.Context, where squirrel.Sqlizer) (*T, error) {
	sql, args, err := r.selectQuery().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", r.table.Entity, err)
	}

	item, err := r.table.Scan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.table.NotFound
		}
		logger.Error().Err(err).Str("table", r.table.Name).Msg("Error scanning row")
		return nil, fmt.Errorf("error retrieving %s: %w", r.table.Entity, err)
	}
	return item, nil
}

// Find returns every record matching where
func (r *PostgresRepository[T]) Find(ctx context.Context, where squirrel.Sqlizer) ([]*T, error) {
	return r.list(ctx, r.selectQuery().Where(where))
}

// GetAll returns every record in table order
func (r *PostgresRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.list(ctx, r.selectQuery())
}

// GetByID returns the record with the given id
func (r *PostgresRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return r.FindOne(ctx, squirrel.Eq{"id": id})
}

// GetByParent returns the records attached to parentID
func (r *PostgresRepository[T]) GetByParent(ctx context.Context, parentID int64) ([]*T, error) {
	if r.table.ParentColumn == "" {
		return nil, fmt.Errorf("%s has no parent column", r.table.Entity)
	}
	return r.Find(ctx, squirrel.Eq{r.table.ParentColumn: parentID})
}

// Create inserts item and fills its id and timestamps
func (r *PostgresRepository[T]) Create(ctx context.Context, item *T) (int64, error) {
	sql, args, err := r.sb.Insert(r.table.Name).
		Columns(r.table.Columns...).
		Values(r.table.Values(item)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.Name).Msg("Error building insert SQL")
		return 0, fmt.Errorf("failed to build %s insert: %w", r.table.Entity, err)
	}

	var id int64
	var created, updated time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &created, &updated); err != nil {
		if mapped := r.mapWriteError(err); mapped != nil {
			return 0, mapped
		}
		logger.Error().Err(err).Str("table", r.table.Name).Msg("Error executing insert")
		return 0, fmt.Errorf("error creating %s: %w", r.table.Entity, err)
	}

	r.table.SetID(item, id)
	r.table.Stamp(item, created, updated)
	return id, nil
}

// Update overwrites every writable column of the record with item's id
func (r *PostgresRepository[T]) Update(ctx context.Context, item *T) error {
	id := r.table.ID(item)
	values := r.table.Values(item)

	query := r.sb.Update(r.table.Name).Set("updated_at", squirrel.Expr("NOW()"))
	for i, col := range r.table.Columns {
		query = query.Set(col, values[i])
	}
	sql, args, err := query.Where(squirrel.Eq{"id": id}).Suffix("RETURNING created_at, updated_at").ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.Name).Msg("Error building update SQL")
		return fmt.Errorf("failed to build %s update: %w", r.table.Entity, err)
	}

	var created, updated time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.table.NotFound
		}
		if mapped := r.mapWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Str("table", r.table.Name).Int64("id", id).Msg("Error executing update")
		return fmt.Errorf("error updating %s: %w", r.table.Entity, err)
	}

	r.table.Stamp(item, created, updated)
	return nil
}

// Delete removes the record with the given id
func (r *PostgresRepository[T]) Delete(ctx context.Context, id int64) error {
	tag, err := r.exec(ctx, r.sb.Delete(r.table.Name).Where(squirrel.Eq{"id": id}))
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.Name).Int64("id", id).Msg("Error executing delete")
		return fmt.Errorf("error deleting %s: %w", r.table.Entity, err)
	}
	if tag.RowsAffected() == 0 {
		return r.table.NotFound
	}
	return nil
}

// DeleteByParent removes every record attached to parentID and returns the count
func (r *PostgresRepository[T]) DeleteByParent(ctx context.Context, parentID int64) (int64, error) {
	if r.table.ParentColumn == "" {
		return 0, fmt.Errorf("%s has no parent column", r.table.Entity)
	}
	return r.DeleteWhere(ctx, squirrel.Eq{r.table.ParentColumn: parentID})
}

// DeleteWhere removes every record matching where and returns the count
func (r *PostgresRepository[T]) DeleteWhere(ctx context.Context, where squirrel.Sqlizer) (int64, error) {
	tag, err := r.exec(ctx, r.sb.Delete(r.table.Name).Where(where))
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.Name).Msg("Error executing batch delete")
		return 0, fmt.Errorf("error deleting %s: %w", r.table.Entity, err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository[T]) exec(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("failed to build query: %w", err)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *PostgresRepository[T]) mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case dberrors.IsDuplicateKeyError(err):
		errors.As(err, &pgErr)
		if mapped := r.table.conflictError(pgErr.ConstraintName); mapped != nil {
			return mapped
		}
		return apperrors.NewConflictError(fmt.Sprintf("%s already exists", r.table.Entity))
	case dberrors.IsForeignKeyError(err):
		return apperrors.NewBadRequestError(fmt.Sprintf("%s references a missing record", r.table.Entity))
	}
	return nil
}
