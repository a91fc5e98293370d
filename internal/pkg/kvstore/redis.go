package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisConfig configures the redis driver
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type redisStore struct {
	rdb    *goredis.Client
	prefix string
	codec  *Codec
}

// NewRedisStore dials redis and verifies the connection with a ping
func NewRedisStore(ctx context.Context, cfg RedisConfig, codec *Codec) (Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if codec == nil {
		codec = NewCodec(DefaultMigrations...)
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{rdb: rdb, prefix: cfg.KeyPrefix, codec: codec}, nil
}

func (s *redisStore) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return true, s.codec.Decode(key, raw, dst)
}

func (s *redisStore) Save(ctx context.Context, key string, v interface{}) error {
	raw, err := s.codec.Encode(v)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.prefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}
