package kvstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressDoc struct {
	ViewedChapters []int64 `json:"viewedChapters"`
	TotalChapters  int     `json:"totalChapters"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)

	var got []int64
	found, err := s.Load(ctx, BookmarksKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, BookmarksKey(1), []int64{3, 5}))
	found, err = s.Load(ctx, BookmarksKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int64{3, 5}, got)

	require.NoError(t, s.Delete(ctx, BookmarksKey(1)))
	found, err = s.Load(ctx, BookmarksKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCodecWritesEnvelope(t *testing.T) {
	raw, err := NewCodec().Encode(map[string]int{"a": 1})
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.JSONEq(t, "1", string(env["version"]))
	assert.JSONEq(t, `{"a":1}`, string(env["data"]))
}

func TestLoadMigratesLegacyBookmarks(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)
	require.True(t, PutRaw(s, BookmarksKey(7), []byte(`["12", 14, "oops"]`)))

	var got []int64
	found, err := s.Load(ctx, BookmarksKey(7), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int64{12, 14}, got)
}

func TestLoadMigratesLegacyProgress(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)
	legacy := `{"4": {"viewedChapters": ["1", "2"], "totalChapters": 4}}`
	require.True(t, PutRaw(s, ProgressKey(2), []byte(legacy)))

	var got map[string]progressDoc
	found, err := s.Load(ctx, ProgressKey(2), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int64{1, 2}, got["4"].ViewedChapters)
	assert.Equal(t, 4, got["4"].TotalChapters)
}

func TestLoadRejectsGarbage(t *testing.T) {
	s := NewMemoryStore(nil)
	require.True(t, PutRaw(s, "k", []byte("{not json")))

	var v interface{}
	_, err := s.Load(context.Background(), "k", &v)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadDropsNonNumericLegacyCourses(t *testing.T) {
	s := NewMemoryStore(nil)
	legacy := `{"abc123": {"viewedChapters": ["x"], "totalChapters": 1}, "5": {"viewedChapters": ["3"]}}`
	require.True(t, PutRaw(s, ProgressKey(2), []byte(legacy)))

	var got map[int64]progressDoc
	found, err := s.Load(context.Background(), ProgressKey(2), &got)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, []int64{3}, got[5].ViewedChapters)
}
