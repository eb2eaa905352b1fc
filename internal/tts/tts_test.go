package tts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "hola mundo", 100, []string{"hola mundo"}},
		{"word boundary", "uno dos tres cuatro", 8, []string{"uno dos", "tres", "cuatro"}},
		{"long word", "abcdefghij kl", 4, []string{"abcd", "efgh", "ij", "kl"}},
		{"collapses whitespace", "a   b\n c", 100, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d chunks, got %d (%q)", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Chunk %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSplitTextRespectsLimit(t *testing.T) {
	text := strings.Repeat("palabra ñandú ", 40)
	for _, c := range SplitText(text, MaxChunkLength) {
		if n := utf8.RuneCountInString(c); n > MaxChunkLength {
			t.Errorf("Expected chunk of at most %d runes, got %d", MaxChunkLength, n)
		}
	}
}

func TestSplitTextNonPositiveLimit(t *testing.T) {
	chunks := SplitText("ab c", 0)
	want := []string{"a", "b", "c"}
	if len(chunks) != len(want) {
		t.Fatalf("Expected %v, got %v", want, chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("Expected chunk %d to be %q, got %q", i, want[i], chunks[i])
		}
	}
}

func TestGoogleSynthesize(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("tl") != "es" {
			t.Errorf("Expected tl=es, got %s", r.URL.Query().Get("tl"))
		}
		_, _ = w.Write([]byte("mp3:" + r.URL.Query().Get("idx") + ";"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "speech.mp3")
	text := strings.Repeat("hola ", 30)
	if err := NewGoogle(srv.URL).Synthesize(context.Background(), text, "es", out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 chunk requests, got %d", calls)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "mp3:0;mp3:1;" {
		t.Errorf("Expected concatenated chunks, got %q", data)
	}
}

func TestGoogleSynthesizeEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	err := NewGoogle(srv.URL).Synthesize(context.Background(), "hola", "es", filepath.Join(t.TempDir(), "x.mp3"))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestGoogleSynthesizeEmptyText(t *testing.T) {
	err := NewGoogle("http://127.0.0.1:0").Synthesize(context.Background(), " ", "es", "unused")
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("Expected ErrEmptyText, got %v", err)
	}
}
