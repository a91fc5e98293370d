// Package geocoding looks up address suggestions on a Nominatim-compatible search API.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "uniportal/1.0"
	DefaultLimit     = 5
	DefaultTimeout   = 10 * time.Second

	// MinQueryLength is the shortest query sent upstream, in runes
	MinQueryLength = 3
)

// Config configures the client
type Config struct {
	BaseURL   string
	UserAgent string
	Limit     int
	Timeout   time.Duration
}

// Suggestion is one candidate address
type Suggestion struct {
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Geocoder returns address suggestions for a partial query
type Geocoder interface {
	Suggest(ctx context.Context, query string) ([]Suggestion, error)
}

type client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a geocoder with defaults for empty fields
func NewClient(cfg Config, logger zerolog.Logger) Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "geocoding").Logger(),
	}
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Suggest returns up to Limit suggestions. Queries shorter than
// MinQueryLength return an empty list without calling upstream.
func (c *client) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []Suggestion{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "0")
	params.Set("limit", strconv.Itoa(c.cfg.Limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("query", query).Msg("geocoding request failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("geocoding request rejected")
		return nil, fmt.Errorf("%w: geocoding status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("%w: decode places: %v", apperrors.ErrExternalService, err)
	}

	out := make([]Suggestion, 0, len(places))
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lon, errLon := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLon != nil || p.DisplayName == "" {
			continue
		}
		out = append(out, Suggestion{DisplayName: p.DisplayName, Lat: lat, Lon: lon})
		if len(out) == c.cfg.Limit {
			break
		}
	}
	return out, nil
}
