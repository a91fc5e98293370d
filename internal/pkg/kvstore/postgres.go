package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userStateTable = "user_state"

type postgresStore struct {
	pool  *pgxpool.Pool
	sb    squirrel.StatementBuilderType
	codec *Codec
}

// NewPostgresStore stores values in the user_state table (key TEXT PRIMARY KEY, value JSONB)
func NewPostgresStore(pool *pgxpool.Pool, codec *Codec) Store {
	if codec == nil {
		codec = NewCodec(DefaultMigrations...)
	}
	return &postgresStore{
		pool:  pool,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		codec: codec,
	}
}

func (s *postgresStore) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	sql, args, err := s.sb.Select("value").From(userStateTable).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var raw []byte
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return true, s.codec.Decode(key, raw, dst)
}

func (s *postgresStore) Save(ctx context.Context, key string, v interface{}) error {
	raw, err := s.codec.Encode(v)
	if err != nil {
		return err
	}

	sql, args, err := s.sb.Insert(userStateTable).
		Columns("key", "value", "updated_at").
		Values(key, raw, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	sql, args, err := s.sb.Delete(userStateTable).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// the pool is owned by the database layer
func (s *postgresStore) Close() error { return nil }
