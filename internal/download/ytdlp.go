package download

import (
	"context"
	"fmt"

	"github.com/ytget/ytdlp/v2"
)

// ytdlpClient adapts github.com/ytget/ytdlp/v2 to Client
type ytdlpClient struct{}

// NewYTDLPClient returns the default Client backed by ytdlp
func NewYTDLPClient() Client {
	return ytdlpClient{}
}

// Download implements Client
func (ytdlpClient) Download(ctx context.Context, url string, strategy Strategy, outPath string, progress func(float64)) (string, error) {
	d := ytdlp.New().WithOutputPath(outPath)
	if strategy.Quality != "" || strategy.Ext != "" {
		d = d.WithFormat(strategy.Quality, strategy.Ext)
	}

	if progress != nil {
		d = d.WithProgress(func(p ytdlp.Progress) {
			progress(p.Percent / 100.0)
		})
	}

	info, err := d.Download(ctx, url)
	if err != nil {
		return "", fmt.Errorf("ytdlp download: %w", err)
	}
	if info == nil {
		return "", nil
	}
	return info.Title, nil
}
