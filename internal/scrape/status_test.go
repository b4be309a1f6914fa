package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubClient returns a canned Content or error.
type stubClient struct {
	content *Content
	err     error
}

func (s *stubClient) Scrape(_ context.Context, _ string, _ *Options) (*Content, error) {
	return s.content, s.err
}

func TestCheckURLStatus_Accessible(t *testing.T) {
	client := &stubClient{content: &Content{
		HTML:       "<html></html>",
		StatusCode: 200,
		FinalURL:   "https://example.com",
	}}

	result := CheckURLStatus(context.Background(), client, "https://example.com")
	assert.True(t, result.Accessible)
	assert.Equal(t, 200, result.StatusCode)
	assert.False(t, result.Redirected)
	assert.Equal(t, "https://example.com", result.FinalURL)
}

func TestCheckURLStatus_Boundaries(t *testing.T) {
	cases := []struct {
		statusCode int
		accessible bool
	}{
		{199, false},
		{200, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status %d", tc.statusCode), func(t *testing.T) {
			client := &stubClient{content: &Content{
				HTML:       "<html></html>",
				StatusCode: tc.statusCode,
				FinalURL:   "https://example.com",
			}}
			result := CheckURLStatus(context.Background(), client, "https://example.com")
			assert.Equal(t, tc.accessible, result.Accessible)
		})
	}
}

func TestCheckURLStatus_Redirected(t *testing.T) {
	client := &stubClient{content: &Content{
		HTML:       "<html></html>",
		StatusCode: 200,
		FinalURL:   "https://example.com/moved",
	}}

	result := CheckURLStatus(context.Background(), client, "https://example.com")
	assert.True(t, result.Redirected)
	assert.Equal(t, "https://example.com/moved", result.FinalURL)
}

func TestCheckURLStatus_TrailingSlashCountsAsRedirect(t *testing.T) {
	// Comparison is textual; no URL normalization is applied.
	client := &stubClient{content: &Content{
		HTML:       "<html></html>",
		StatusCode: 200,
		FinalURL:   "https://example.com/",
	}}

	result := CheckURLStatus(context.Background(), client, "https://example.com")
	assert.True(t, result.Redirected)
}

func TestCheckURLStatus_NeverPropagatesFailure(t *testing.T) {
	client := &stubClient{err: &Error{URL: "https://dead.example", Message: "unreachable", Cause: errors.New("dial tcp")}}

	result := CheckURLStatus(context.Background(), client, "https://dead.example")
	assert.Equal(t, StatusResult{
		Accessible: false,
		StatusCode: 0,
		Redirected: false,
		FinalURL:   "https://dead.example",
	}, result)
}
