package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

func TestSuggestShortQuerySkipsUpstream(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	g := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	got, err := g.Suggest(context.Background(), " él ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSuggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "rue didouche", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "uniportal-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[
			{"display_name":"Rue Didouche Mourad, Alger","lat":"36.77","lon":"3.05"},
			{"display_name":"broken","lat":"x","lon":"3.0"},
			{"display_name":"Rue Didouche, Oran","lat":"35.69","lon":"-0.63"}
		]`))
	}))
	defer srv.Close()

	g := NewClient(Config{BaseURL: srv.URL, UserAgent: "uniportal-test", Limit: 2}, zerolog.Nop())
	got, err := g.Suggest(context.Background(), "rue didouche")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Rue Didouche Mourad, Alger", got[0].DisplayName)
	assert.InDelta(t, -0.63, got[1].Lon, 0.0001)
}

func TestSuggestUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	_, err := g.Suggest(context.Background(), "Alger centre")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
