package scrape

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seopilot/internal/access"
	"github.com/jonathan/seopilot/internal/db"
)

type fakeResolver struct {
	urls map[uuid.UUID]*db.ProjectURL
}

func (f *fakeResolver) GetProjectURL(_ context.Context, urlID uuid.UUID) (*db.ProjectURL, error) {
	return f.urls[urlID], nil
}

func TestScrapeByProjectURLID_TagsSource(t *testing.T) {
	urlID := uuid.New()
	resolver := &fakeResolver{urls: map[uuid.UUID]*db.ProjectURL{
		urlID: {ID: urlID, URL: "https://example.com/pricing", RenderJS: true},
	}}
	client := &stubClient{content: &Content{
		HTML:       "<html></html>",
		StatusCode: 200,
		FinalURL:   "https://example.com/pricing",
		Headers:    map[string]string{},
	}}

	svc := NewService(client, resolver)
	content, err := svc.ScrapeByProjectURLID(context.Background(), urlID, nil)
	require.NoError(t, err)
	require.NotNil(t, content.SourceURLID)
	assert.Equal(t, urlID, *content.SourceURLID)
}

func TestScrapeByProjectURLID_UnknownURL(t *testing.T) {
	svc := NewService(&stubClient{}, &fakeResolver{urls: map[uuid.UUID]*db.ProjectURL{}})

	_, err := svc.ScrapeByProjectURLID(context.Background(), uuid.New(), nil)
	require.Error(t, err)

	var notFound *access.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestScrapeByProjectURLID_ClientFailurePropagates(t *testing.T) {
	urlID := uuid.New()
	resolver := &fakeResolver{urls: map[uuid.UUID]*db.ProjectURL{
		urlID: {ID: urlID, URL: "https://example.com"},
	}}
	svc := NewService(&stubClient{err: &Error{URL: "https://example.com", Message: "unreachable"}}, resolver)

	_, err := svc.ScrapeByProjectURLID(context.Background(), urlID, nil)
	require.Error(t, err)

	var scrapeErr *Error
	assert.ErrorAs(t, err, &scrapeErr)
}
