package download

import "context"

// VideoFetcher downloads a video to the local temp directory
type VideoFetcher interface {
	Fetch(ctx context.Context, url, videoID string, progress func(float64)) (*Result, error)
}

// Client performs a single download attempt with a given strategy
type Client interface {
	Download(ctx context.Context, url string, strategy Strategy, outPath string, progress func(float64)) (title string, err error)
}
