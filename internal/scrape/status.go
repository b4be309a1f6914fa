package scrape

import "context"

// StatusResult classifies the HTTP outcome of a tracked URL.
type StatusResult struct {
	Accessible bool   `json:"accessible"`
	StatusCode int    `json:"status_code"`
	Redirected bool   `json:"redirected"`
	FinalURL   string `json:"final_url"`
}

// CheckURLStatus reports whether a URL is reachable. Dead links are routine,
// so this never returns an error: any scrape failure is folded into a
// not-accessible result with status code 0 and the original URL.
func CheckURLStatus(ctx context.Context, client Client, url string) StatusResult {
	content, err := client.Scrape(ctx, url, DefaultOptions())
	if err != nil {
		return StatusResult{
			Accessible: false,
			StatusCode: 0,
			Redirected: false,
			FinalURL:   url,
		}
	}

	return StatusResult{
		Accessible: content.StatusCode >= 200 && content.StatusCode < 300,
		StatusCode: content.StatusCode,
		// Textual comparison; no URL normalization.
		Redirected: content.FinalURL != url,
		FinalURL:   content.FinalURL,
	}
}
