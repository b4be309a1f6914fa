package scrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// LocalClient fetches pages directly instead of going through the hosted
// scraping function. It is used in development when SCRAPER_FN_URL is unset.
// It produces the same Content envelope; scoring still happens elsewhere.
type LocalClient struct {
	Timeout    time.Duration
	UserAgent  string
	RenderWait time.Duration
}

// DefaultUserAgent identifies local fetches.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SEOPilot/1.0)"

// NewLocalClient creates a local scrape client with default settings.
func NewLocalClient() *LocalClient {
	return &LocalClient{
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
		RenderWait: 2 * time.Second,
	}
}

// Scrape fetches the URL over plain HTTP, falling back to a headless browser
// when JavaScript rendering is requested and the initial response looks like
// an empty SPA shell. Requires Chrome/Chromium for the rendered path.
func (c *LocalClient) Scrape(ctx context.Context, rawURL string, opts *Options) (*Content, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: c.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	html := string(body)
	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if opts.RenderJS && shouldRender(html) {
		rendered, renderErr := c.render(ctx, rawURL)
		if renderErr == nil && rendered != "" {
			html = rendered
		}
		// Rendering failures keep the plain-HTTP body; the page may simply
		// not need JavaScript.
	}

	if strings.TrimSpace(html) == "" {
		return nil, &Error{URL: rawURL, Message: "response has no html"}
	}

	headers := make(map[string]string, len(resp.Header))
	for key := range resp.Header {
		headers[key] = resp.Header.Get(key)
	}

	return &Content{
		HTML:       html,
		StatusCode: resp.StatusCode,
		FinalURL:   finalURL,
		Headers:    headers,
	}, nil
}

// minRenderedLength is the minimum body length below which a page is assumed
// to be a JavaScript-rendered shell.
const minRenderedLength = 500

func shouldRender(html string) bool {
	return len(strings.TrimSpace(html)) < minRenderedLength
}

// render loads the page in headless Chrome and returns the rendered HTML.
func (c *LocalClient) render(ctx context.Context, rawURL string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(c.RenderWait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}
	return html, nil
}
