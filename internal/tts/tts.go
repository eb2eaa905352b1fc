// Package tts synthesizes speech for translated text.
package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Google TTS endpoint constants
const (
	DefaultBaseURL   = "https://translate.google.com"
	ttsPath          = "/translate_tts"
	ttsClient        = "tw-ob"
	MaxChunkLength   = 100
	DefaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Errors
var (
	ErrEmptyText     = errors.New("nothing to synthesize")
	ErrEmptyResponse = errors.New("empty audio response")
)

// Synthesizer turns text into an audio file
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang, outPath string) error
}

// Google synthesizes MP3 speech through the Google Translate TTS endpoint
type Google struct {
	BaseURL string
	http    *resty.Client
}

// NewGoogle creates a Google synthesizer. Empty baseURL uses DefaultBaseURL.
func NewGoogle(baseURL string) *Google {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", defaultUserAgent).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Google{BaseURL: strings.TrimRight(baseURL, "/"), http: c}
}

// Synthesize writes the MP3 rendition of text to outPath
func (g *Google) Synthesize(ctx context.Context, text, lang, outPath string) error {
	chunks := SplitText(text, MaxChunkLength)
	if len(chunks) == 0 {
		return ErrEmptyText
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := g.fetchChunk(ctx, chunk, lang, i, len(chunks))
		if err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		audio.Write(data)
	}

	if err := os.WriteFile(outPath, audio.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write speech file: %w", err)
	}
	return nil
}

func (g *Google) fetchChunk(ctx context.Context, chunk, lang string, idx, total int) ([]byte, error) {
	r, err := g.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"ie":      "UTF-8",
			"client":  ttsClient,
			"tl":      lang,
			"q":       chunk,
			"total":   fmt.Sprint(total),
			"idx":     fmt.Sprint(idx),
			"textlen": fmt.Sprint(len([]rune(chunk))),
		}).
		Get(g.BaseURL + ttsPath)
	if err != nil {
		return nil, err
	}
	if r.IsError() {
		return nil, fmt.Errorf("google tts: %s", r.Status())
	}
	if len(r.Body()) == 0 {
		return nil, ErrEmptyResponse
	}
	return r.Body(), nil
}

// SplitText breaks text into chunks of at most max runes, cutting at word
// boundaries. A single word longer than max is hard-split. max is at least 1.
func SplitText(text string, max int) []string {
	if max < 1 {
		max = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = cur[:0]
		}
	}

	for _, w := range words {
		wr := []rune(w)
		for len(wr) > max {
			flush()
			chunks = append(chunks, string(wr[:max]))
			wr = wr[max:]
		}
		if len(wr) == 0 {
			continue
		}
		needed := len(wr)
		if len(cur) > 0 {
			needed++
		}
		if len(cur)+needed > max {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, wr...)
	}
	flush()
	return chunks
}
