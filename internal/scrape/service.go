package scrape

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/db"
)

// URLResolver looks up tracked-URL records. Returns nil, nil when the record
// does not exist.
type URLResolver interface {
	GetProjectURL(ctx context.Context, urlID uuid.UUID) (*db.ProjectURL, error)
}

// Service scrapes tracked URLs by their stored identifier.
type Service struct {
	client Client
	urls   URLResolver
}

// NewService creates a scrape service over the given client and URL store.
func NewService(client Client, urls URLResolver) *Service {
	return &Service{client: client, urls: urls}
}

// Client returns the underlying scrape client.
func (s *Service) Client() Client {
	return s.client
}

// ScrapeByProjectURLID resolves the tracked-URL record, scrapes it with its
// stored render preference, and tags the result with the source identifier.
func (s *Service) ScrapeByProjectURLID(ctx context.Context, urlID uuid.UUID, opts *Options) (*Content, error) {
	record, err := s.urls.GetProjectURL(ctx, urlID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tracked URL: %w", err)
	}
	if record == nil {
		return nil, &access.NotFoundError{Resource: "tracked URL", ID: urlID}
	}

	if opts == nil {
		opts = &Options{RenderJS: record.RenderJS}
	}

	content, err := s.client.Scrape(ctx, record.URL, opts)
	if err != nil {
		return nil, err
	}
	content.SourceURLID = &record.ID
	return content, nil
}
