package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/describer"
	"github.com/yigit/uniportal/internal/pkg/geocoding"
	"github.com/yigit/uniportal/internal/pkg/markdown"
)

var errNotConfigured = apperrors.NewCustomError(apperrors.ErrNotConfigured, "description generator not configured")

// DescriptionService drafts chapter and series descriptions
type DescriptionService interface {
	DescribeChapter(ctx context.Context, req *dto.ChapterDescriptionRequest) (*dto.DescriptionResponse, error)
	DescribeSeries(ctx context.Context, req *dto.SeriesDescriptionRequest) (*dto.DescriptionResponse, error)
	// Preview turns a document link into its embeddable form
	Preview(rawURL, title string) (*dto.PreviewResponse, error)
}

type descriptionServiceImpl struct {
	describer describer.Describer
	markdown  *markdown.Renderer
}

// NewDescriptionService creates a new description service
func NewDescriptionService(d describer.Describer, renderer *markdown.Renderer) DescriptionService {
	return &descriptionServiceImpl{describer: d, markdown: renderer}
}

func (s *descriptionServiceImpl) respond(text string, err error) (*dto.DescriptionResponse, error) {
	if errors.Is(err, apperrors.ErrNotConfigured) {
		return nil, errNotConfigured
	}
	if err != nil {
		return nil, err
	}
	html, err := s.markdown.Render(text)
	if err != nil {
		html = ""
	}
	return &dto.DescriptionResponse{Description: text, HTML: html}, nil
}

func (s *descriptionServiceImpl) DescribeChapter(ctx context.Context, req *dto.ChapterDescriptionRequest) (*dto.DescriptionResponse, error) {
	if s.describer == nil {
		return nil, errNotConfigured
	}
	return s.respond(s.describer.DescribeChapter(ctx, req.Title, req.CourseName, req.Professor))
}

func (s *descriptionServiceImpl) DescribeSeries(ctx context.Context, req *dto.SeriesDescriptionRequest) (*dto.DescriptionResponse, error) {
	if s.describer == nil {
		return nil, errNotConfigured
	}
	return s.respond(s.describer.DescribeSeries(ctx, req.Title, req.Type, req.CourseName))
}

func (s *descriptionServiceImpl) Preview(rawURL, title string) (*dto.PreviewResponse, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, apperrors.NewValidationError("url", "url is required")
	}
	return &dto.PreviewResponse{
		Title:    strings.TrimSpace(title),
		URL:      rawURL,
		EmbedURL: domain.PreviewURL(rawURL),
	}, nil
}

// AddressService suggests postal addresses for the profile form
type AddressService interface {
	Suggest(ctx context.Context, query string) ([]geocoding.Suggestion, error)
}

type addressServiceImpl struct {
	geocoder geocoding.Geocoder
}

// NewAddressService creates a new address service
func NewAddressService(g geocoding.Geocoder) AddressService {
	return &addressServiceImpl{geocoder: g}
}

func (s *addressServiceImpl) Suggest(ctx context.Context, query string) ([]geocoding.Suggestion, error) {
	if s.geocoder == nil {
		return nil, apperrors.ErrNotConfigured
	}
	suggestions, err := s.geocoder.Suggest(ctx, query)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []geocoding.Suggestion{}
	}
	return suggestions, nil
}
