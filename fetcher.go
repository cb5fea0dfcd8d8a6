package tomtejakt

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// The context controls timeout and cancellation. Non-2xx responses
	// are EUNAVAILABLE errors carrying the status code.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}

// Pacer throttles request rate. Pace blocks until the next request is
// allowed, purely as politeness backpressure; it is not a correctness
// requirement. Tests inject a no-op pacer.
type Pacer interface {
	Pace(ctx context.Context) error
}
