package driven

import "context"

// PageFetcher downloads raw page markup.
// Retry and throttling policy belongs to the implementation; the core only
// sees success or a fetch error.
type PageFetcher interface {
	// Fetch returns the raw markup of the page at url.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
