package exports

import (
	"testing"

	"github.com/ytget/ytdash/internal/model"
)

var testRecords = []model.ExportRecord{
	{Year: 2022, Product: "Beef", ValueUSDMillions: 1400},
	{Year: 2023, Product: "Beef", ValueUSDMillions: 1500},
	{Year: 2023, Product: "Rice", ValueUSDMillions: 400},
	{Year: 2023, Product: "Pulp", ValueUSDMillions: 900.5},
}

var testPartners = []model.TradePartner{
	{Country: "Brazil", ExportsUSDMillions: 1500, ImportsUSDMillions: 1800, BalanceUSDMillions: -300},
	{Country: "China", ExportsUSDMillions: 2000, ImportsUSDMillions: 1000, BalanceUSDMillions: 1000},
}

func TestTopProducts(t *testing.T) {
	top := TopProducts(testRecords, 2023, 2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(top))
	}
	if top[0].Product != "Beef" || top[1].Product != "Pulp" {
		t.Errorf("Expected Beef, Pulp; got %s, %s", top[0].Product, top[1].Product)
	}
	if all := TopProducts(testRecords, 2023, 0); len(all) != 3 {
		t.Errorf("Expected all 3 products for n=0, got %d", len(all))
	}
	if none := TopProducts(testRecords, 1999, 5); len(none) != 0 {
		t.Errorf("Expected no products for missing year, got %d", len(none))
	}
}

func TestYears(t *testing.T) {
	years := Years(testRecords)
	if len(years) != 2 || years[0] != 2023 || years[1] != 2022 {
		t.Errorf("Expected [2023 2022], got %v", years)
	}
	if LatestYear(nil) != 0 {
		t.Error("Expected 0 for empty records")
	}
}

func TestComputeSummary(t *testing.T) {
	s := ComputeSummary(testRecords, testPartners)
	if s.LatestYear != 2023 {
		t.Errorf("Expected latest year 2023, got %d", s.LatestYear)
	}
	if s.TotalExports != 2800.5 {
		t.Errorf("Expected total 2800.5, got %v", s.TotalExports)
	}
	if s.TopProduct != "Beef" {
		t.Errorf("Expected top product Beef, got %s", s.TopProduct)
	}
	if s.TopPartner != "China" {
		t.Errorf("Expected top partner China, got %s", s.TopPartner)
	}
	if s.TradeBalance != 700 || s.BalanceLabel != BalanceSurplus {
		t.Errorf("Expected surplus of 700, got %v (%s)", s.TradeBalance, s.BalanceLabel)
	}

	deficit := ComputeSummary(testRecords, testPartners[:1])
	if deficit.BalanceLabel != BalanceDeficit {
		t.Errorf("Expected deficit, got %s", deficit.BalanceLabel)
	}
}

func TestGrowthTable(t *testing.T) {
	trends := []model.TrendPoint{
		{Year: 2022, Category: "Services", ValueUSDMillions: 1000},
		{Year: 2023, Category: "Services", ValueUSDMillions: 1100},
		{Year: 2022, Category: "Manufacturing", ValueUSDMillions: 800},
		{Year: 2023, Category: "Manufacturing", ValueUSDMillions: 700},
		{Year: 2023, Category: "New", ValueUSDMillions: 50},
	}
	rows := GrowthTable(trends)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows (category without previous year skipped), got %d", len(rows))
	}
	if rows[0].Category != "Services" || rows[0].GrowthPercent != 10 {
		t.Errorf("Expected Services +10%%, got %s %v", rows[0].Category, rows[0].GrowthPercent)
	}
	if rows[1].GrowthPercent != -12.5 {
		t.Errorf("Expected -12.5%%, got %v", rows[1].GrowthPercent)
	}
	if rows[0].LatestYear != 2023 || rows[0].PreviousYear != 2022 {
		t.Errorf("Expected 2023 vs 2022, got %d vs %d", rows[0].LatestYear, rows[0].PreviousYear)
	}
	if GrowthTable(nil) != nil {
		t.Error("Expected nil for empty trends")
	}
}

func TestComplexityByRCA(t *testing.T) {
	rows := SampleComplexity()
	sorted := ComplexityByRCA(rows)
	if sorted[0].Name != "Wool" || sorted[len(sorted)-1].Name != "Machinery" {
		t.Errorf("Expected Wool first and Machinery last, got %s and %s", sorted[0].Name, sorted[len(sorted)-1].Name)
	}
	if rows[0].Name != "Beef" {
		t.Error("Expected input to be left untouched")
	}
}
