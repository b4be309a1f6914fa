package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scraperStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestRemoteClient_Scrape_FullEnvelope(t *testing.T) {
	server := scraperStub(t, http.StatusOK,
		`{"html": "<html><body>hi</body></html>", "status_code": 301,
		  "final_url": "https://example.com/new", "headers": {"Content-Type": "text/html"}}`)
	defer server.Close()

	client := NewRemoteClient(server.URL)
	content, err := client.Scrape(context.Background(), "https://example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>hi</body></html>", content.HTML)
	assert.Equal(t, 301, content.StatusCode)
	assert.Equal(t, "https://example.com/new", content.FinalURL)
	assert.Equal(t, map[string]string{"Content-Type": "text/html"}, content.Headers)
	assert.Nil(t, content.SourceURLID)
}

func TestRemoteClient_Scrape_Defaults(t *testing.T) {
	server := scraperStub(t, http.StatusOK, `{"html": "<html></html>"}`)
	defer server.Close()

	client := NewRemoteClient(server.URL)
	content, err := client.Scrape(context.Background(), "https://example.com/page", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, content.StatusCode)
	assert.Equal(t, "https://example.com/page", content.FinalURL)
	assert.Equal(t, map[string]string{}, content.Headers)
}

func TestRemoteClient_Scrape_MissingHTML(t *testing.T) {
	server := scraperStub(t, http.StatusOK, `{"final_url": "https://example.com"}`)
	defer server.Close()

	client := NewRemoteClient(server.URL)
	_, err := client.Scrape(context.Background(), "https://example.com", nil)
	require.Error(t, err)

	var scrapeErr *Error
	assert.ErrorAs(t, err, &scrapeErr)
	assert.Contains(t, err.Error(), "no html")
}

func TestRemoteClient_Scrape_ErrorEnvelope(t *testing.T) {
	server := scraperStub(t, http.StatusBadGateway, `{"message": "navigation timeout"}`)
	defer server.Close()

	client := NewRemoteClient(server.URL)
	_, err := client.Scrape(context.Background(), "https://example.com", nil)
	require.Error(t, err)

	var scrapeErr *Error
	require.ErrorAs(t, err, &scrapeErr)
	assert.Contains(t, scrapeErr.Message, "navigation timeout")
}

func TestRemoteClient_Scrape_MalformedEnvelope(t *testing.T) {
	server := scraperStub(t, http.StatusOK, `{"html": 42}`)
	defer server.Close()

	client := NewRemoteClient(server.URL)
	_, err := client.Scrape(context.Background(), "https://example.com", nil)
	require.Error(t, err)

	var scrapeErr *Error
	require.ErrorAs(t, err, &scrapeErr)
	assert.Contains(t, scrapeErr.Message, "malformed response envelope")
}

func TestRemoteClient_Scrape_FunctionUnreachable(t *testing.T) {
	server := scraperStub(t, http.StatusOK, `{}`)
	server.Close() // shut down before calling

	client := NewRemoteClient(server.URL)
	_, err := client.Scrape(context.Background(), "https://example.com", nil)
	require.Error(t, err)

	var scrapeErr *Error
	assert.ErrorAs(t, err, &scrapeErr)
}

func TestRemoteClient_Scrape_SendsRenderFlag(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"html": "<html></html>"}`))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)

	_, err := client.Scrape(context.Background(), "https://example.com", &Options{RenderJS: false})
	require.NoError(t, err)
	assert.Contains(t, gotBody, `"render_js":false`)

	_, err = client.Scrape(context.Background(), "https://example.com", nil)
	require.NoError(t, err)
	assert.Contains(t, gotBody, `"render_js":true`, "render_js should default to true")
}
