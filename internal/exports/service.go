package exports

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ytget/ytdash/internal/model"
)

// DefaultCacheTTL is how long a loaded dataset is served before reloading
const DefaultCacheTTL = time.Hour

// Service serves datasets from a Source through a TTL cache
type Service struct {
	source  Source
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	cached  *model.Dataset
	expires time.Time
}

// NewService creates a dataset service. ttl <= 0 uses DefaultCacheTTL.
func NewService(source Source, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{source: source, ttl: ttl, now: time.Now}
}

// SourceName returns the name of the underlying source
func (s *Service) SourceName() string {
	return s.source.Name()
}

// Dataset returns the cached dataset, loading it when missing or expired
func (s *Service) Dataset(ctx context.Context) (*model.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Before(s.expires) {
		return s.cached, nil
	}
	return s.loadLocked(ctx)
}

// Refresh drops the cache and loads the dataset again
func (s *Service) Refresh(ctx context.Context) (*model.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) (*model.Dataset, error) {
	start := s.now()
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s export data: %w", s.source.Name(), err)
	}
	ds.Checksum, err = Checksum(ds)
	if err != nil {
		return nil, err
	}
	if s.cached != nil && s.cached.Checksum != ds.Checksum {
		log.Printf("Export data changed (%s -> %s)", s.cached.Checksum, ds.Checksum)
	}
	log.Printf("Loaded %s export data in %v (%d exports, %d partners, %d trends, %d complexity rows)",
		s.source.Name(), s.now().Sub(start), len(ds.Exports), len(ds.Partners), len(ds.Trends), len(ds.Complexity))

	s.cached = ds
	s.expires = s.now().Add(s.ttl)
	return ds, nil
}

// Summary returns the headline metrics
func (s *Service) Summary(ctx context.Context) (Summary, *model.Dataset, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return Summary{}, nil, err
	}
	return ComputeSummary(ds.Exports, ds.Partners), ds, nil
}

// Table renders the named dataset
func (s *Service) Table(ctx context.Context, name string, year int) (*Table, *model.Dataset, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, nil, err
	}
	t, err := BuildTable(ds, name, year)
	return t, ds, err
}

// Chart builds the named chart
func (s *Service) Chart(ctx context.Context, name string, year int) (*ChartConfig, *model.Dataset, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, err := BuildChart(ds, name, year)
	return c, ds, err
}

// Checksum hashes the rows of ds, ignoring load metadata
func Checksum(ds *model.Dataset) (string, error) {
	payload, err := json.Marshal(struct {
		Exports    []model.ExportRecord
		Partners   []model.TradePartner
		Trends     []model.TrendPoint
		Complexity []model.ProductComplexity
	}{ds.Exports, ds.Partners, ds.Trends, ds.Complexity})
	if err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}

	digest := xxhash.New()
	_, _ = digest.Write(payload)
	return hex.EncodeToString(digest.Sum(nil)), nil
}
