package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Google web translation endpoint constants
const (
	GoogleProvider       = "google"
	DefaultGoogleBaseURL = "https://translate.googleapis.com"
	googleTranslatePath  = "/translate_a/single"
	googleClient         = "gtx"
	AutoLanguage         = "auto"
	DefaultHTTPTimeout   = 20 * time.Second
)

// Google translates text through the public Google Translate web endpoint
type Google struct {
	BaseURL string
	http    *resty.Client
}

// NewGoogle creates a Google translator. Empty baseURL uses DefaultGoogleBaseURL.
func NewGoogle(baseURL string) *Google {
	if baseURL == "" {
		baseURL = DefaultGoogleBaseURL
	}
	c := resty.New().
		SetTimeout(DefaultHTTPTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Google{BaseURL: strings.TrimRight(baseURL, "/"), http: c}
}

// Name implements Translator
func (g *Google) Name() string { return GoogleProvider }

// Translate implements Translator
func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == "" {
		source = AutoLanguage
	}
	r, err := g.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": googleClient,
			"sl":     source,
			"tl":     target,
			"dt":     "t",
		}).
		SetQueryParam("q", text).
		Get(g.BaseURL + googleTranslatePath)
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("google translate: %s; body: %s", r.Status(), abbreviate(r.String(), 200))
	}
	return parseGoogleResponse(r.Body())
}

// parseGoogleResponse extracts the translated sentences from the nested array
// returned by the gtx endpoint: [[["Hola","Hello",...],...],null,"en",...]
func parseGoogleResponse(body []byte) (string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("google translate: unexpected response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("google translate: empty response")
	}

	var sentences [][]any
	if err := json.Unmarshal(raw[0], &sentences); err != nil {
		return "", fmt.Errorf("google translate: unexpected sentences: %w", err)
	}

	var b strings.Builder
	for _, s := range sentences {
		if len(s) == 0 {
			continue
		}
		if part, ok := s[0].(string); ok {
			b.WriteString(part)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
