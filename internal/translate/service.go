package translate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/ytget/ytdash/internal/model"
)

// Progress logging interval in segments
const ProgressLogEvery = 10

// Translator translates a piece of text between two languages
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Cache stores translations keyed by source text hash, language pair and provider
type Cache interface {
	Get(ctx context.Context, hash, source, target, provider string) (string, bool, error)
	Put(ctx context.Context, hash, source, target, provider, translation string) error
}

// Service translates text through a Translator with an optional Cache in front
type Service struct {
	translator Translator
	cache      Cache
}

// NewService creates a translation service. cache may be nil.
func NewService(translator Translator, cache Cache) *Service {
	return &Service{translator: translator, cache: cache}
}

// TextHash returns the cache key hash for text
func TextHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// Translate returns the translation of text, consulting the cache first
func (s *Service) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == "" {
		source = AutoLanguage
	}
	hash := TextHash(text)
	provider := s.translator.Name()

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, hash, source, target, provider); err == nil && ok {
			return cached, nil
		} else if err != nil {
			log.Printf("Translation cache lookup failed: %v", err)
		}
	}

	translated, err := s.translator.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}
	translated = strings.TrimSpace(translated)

	if s.cache != nil && translated != "" && translated != text {
		if err := s.cache.Put(ctx, hash, source, target, provider, translated); err != nil {
			log.Printf("Translation cache write failed: %v", err)
		}
	}
	return translated, nil
}

// TranslateSegments translates every non-blank segment into target.
// A failed, empty or unchanged translation keeps the original text with
// Fallback set, and processing continues. progress receives (done, total).
// It returns the translated segments and how many were actually translated;
// the only error is cancellation of ctx.
func (s *Service) TranslateSegments(ctx context.Context, segments []model.Segment, source, target string, progress func(done, total int)) ([]model.TranslatedSegment, int, error) {
	total := len(segments)
	out := make([]model.TranslatedSegment, 0, total)
	successful := 0

	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return out, successful, err
		}

		original := strings.TrimSpace(seg.Text)
		if original == "" {
			continue
		}

		if i%ProgressLogEvery == 0 || i == total-1 {
			log.Printf("Translating segment %d/%d (%.0f%%)", i+1, total, float64(i+1)/float64(total)*100)
		}

		ts := model.TranslatedSegment{
			Original:   original,
			Translated: original,
			Start:      seg.Start,
			End:        seg.End,
			Fallback:   true,
		}

		translated, err := s.Translate(ctx, original, source, target)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return out, successful, ctx.Err()
			}
			log.Printf("Translation failed for segment %d: %s", i+1, abbreviate(err.Error(), 50))
		case translated != "" && translated != original:
			ts.Translated = translated
			ts.Fallback = false
			successful++
		}

		out = append(out, ts)
		if progress != nil {
			progress(i+1, total)
		}
	}

	log.Printf("Translation complete (%d/%d successful)", successful, total)
	return out, successful, nil
}
