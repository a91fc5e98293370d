// Package kvstore persists small per-user JSON documents (course progress,
// bookmarks) behind one interface with redis, postgres and memory drivers.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CurrentVersion is written into every envelope saved by this package
const CurrentVersion = 1

// ErrCorrupt is returned by Load when the stored bytes cannot be decoded into the destination
var ErrCorrupt = errors.New("stored value is corrupt")

// Store loads and saves JSON values by key. Concurrent writers to one key: last write wins.
type Store interface {
	Load(ctx context.Context, key string, dst interface{}) (bool, error)
	Save(ctx context.Context, key string, v interface{}) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Migration upgrades the raw payload of a key prefix from version From to From+1
type Migration struct {
	Prefix string
	From   int
	Apply  func(raw json.RawMessage) (json.RawMessage, error)
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Codec wraps values in a versioned envelope and runs migrations on read.
// Drivers only move bytes; the codec is shared by all of them.
type Codec struct {
	migrations []Migration
}

// NewCodec creates a codec with the given migrations
func NewCodec(migrations ...Migration) *Codec {
	return &Codec{migrations: migrations}
}

// Encode wraps v in a current-version envelope
func (c *Codec) Encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return json.Marshal(envelope{Version: CurrentVersion, Data: data})
}

// Decode unwraps raw into dst. A blob without an envelope is treated as version 0.
func (c *Codec) Decode(key string, raw []byte, dst interface{}) error {
	env, err := parseEnvelope(raw)
	if err != nil {
		return err
	}

	for env.Version < CurrentVersion {
		m, ok := c.find(key, env.Version)
		if ok {
			upgraded, err := m.Apply(env.Data)
			if err != nil {
				return fmt.Errorf("%w: migrate %s from v%d: %v", ErrCorrupt, key, env.Version, err)
			}
			env.Data = upgraded
		}
		env.Version++
	}

	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

func (c *Codec) find(key string, from int) (Migration, bool) {
	for _, m := range c.migrations {
		if m.From == from && strings.HasPrefix(key, m.Prefix) {
			return m, true
		}
	}
	return Migration{}, false
}

func parseEnvelope(raw []byte) (envelope, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		versionRaw, hasVersion := probe["version"]
		data, hasData := probe["data"]
		if hasVersion && hasData && len(probe) == 2 {
			var version int
			if err := json.Unmarshal(versionRaw, &version); err == nil {
				return envelope{Version: version, Data: data}, nil
			}
		}
	}
	if !json.Valid(raw) {
		return envelope{}, fmt.Errorf("%w: not valid JSON", ErrCorrupt)
	}
	return envelope{Version: 0, Data: raw}, nil
}

// ProgressKey is the key of a user's course progress map
func ProgressKey(userID int64) string {
	return fmt.Sprintf("courseProgress:%d", userID)
}

// BookmarksKey is the key of a user's bookmarked course set
func BookmarksKey(userID int64) string {
	return fmt.Sprintf("bookmarkedCourses:%d", userID)
}
