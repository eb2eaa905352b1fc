package exports

import (
	"context"
	"reflect"
	"testing"
)

func TestSampleExports(t *testing.T) {
	records := SampleExports()
	if len(records) != 18*6 {
		t.Fatalf("Expected 108 export records, got %d", len(records))
	}
	for _, r := range records {
		if r.Year < 2018 || r.Year > 2023 {
			t.Errorf("Unexpected year %d", r.Year)
		}
		if r.MarketSharePercent < 0.1 || r.MarketSharePercent > 15 {
			t.Errorf("Market share out of range for %s: %v", r.Product, r.MarketSharePercent)
		}
	}

	// Beef base value 1500, 2% yearly growth, 0.8-1.2 noise
	for _, r := range records {
		if r.Product != "Beef" {
			continue
		}
		factor := 1 + float64(r.Year-2018)*0.02
		if r.ValueUSDMillions < 1500*factor*0.8 || r.ValueUSDMillions > 1500*factor*1.2 {
			t.Errorf("Beef value out of range in %d: %v", r.Year, r.ValueUSDMillions)
		}
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	a, _ := NewSampleSource().Load(context.Background())
	b, _ := NewSampleSource().Load(context.Background())
	if !reflect.DeepEqual(a.Exports, b.Exports) || !reflect.DeepEqual(a.Partners, b.Partners) || !reflect.DeepEqual(a.Trends, b.Trends) {
		t.Error("Expected identical sample data across loads")
	}
}

func TestSamplePartners(t *testing.T) {
	partners := SamplePartners()
	if len(partners) != 15 {
		t.Fatalf("Expected 15 partners, got %d", len(partners))
	}
	for i, p := range partners {
		if i > 0 && p.ExportsUSDMillions > partners[i-1].ExportsUSDMillions {
			t.Errorf("Expected partners sorted by exports descending at %d", i)
		}
		if p.ImportsUSDMillions < p.ExportsUSDMillions*0.3-0.01 || p.ImportsUSDMillions > p.ExportsUSDMillions*1.5+0.01 {
			t.Errorf("Imports out of range for %s", p.Country)
		}
		if diff := p.BalanceUSDMillions - (p.ExportsUSDMillions - p.ImportsUSDMillions); diff > 0.02 || diff < -0.02 {
			t.Errorf("Balance mismatch for %s: %v", p.Country, diff)
		}
	}
}

func TestSampleTrendsAndComplexity(t *testing.T) {
	trends := SampleTrends()
	if len(trends) != 5*14 {
		t.Errorf("Expected 70 trend points, got %d", len(trends))
	}
	if trends[0].Year != 2010 || trends[len(trends)-1].Year != 2023 {
		t.Errorf("Expected trends from 2010 to 2023, got %d-%d", trends[0].Year, trends[len(trends)-1].Year)
	}

	complexity := SampleComplexity()
	if len(complexity) != 12 {
		t.Fatalf("Expected 12 complexity rows, got %d", len(complexity))
	}
	complexity[0].Name = "changed"
	if SampleComplexity()[0].Name != "Beef" {
		t.Error("Expected SampleComplexity to return a copy")
	}
}

func TestSampleLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSampleSource().Load(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
