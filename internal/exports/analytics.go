package exports

import (
	"sort"

	"github.com/ytget/ytdash/internal/model"
)

// Balance labels
const (
	BalanceSurplus = "Surplus"
	BalanceDeficit = "Deficit"
)

// Summary holds the headline metrics of the dashboard
type Summary struct {
	LatestYear   int     `json:"latest_year"`
	TotalExports float64 `json:"total_exports_usd_millions"`
	TopProduct   string  `json:"top_product"`
	TopPartner   string  `json:"top_partner"`
	TradeBalance float64 `json:"trade_balance_usd_millions"`
	BalanceLabel string  `json:"balance_label"`
}

// GrowthRow compares a category between the two most recent years
type GrowthRow struct {
	Category      string  `json:"category"`
	LatestYear    int     `json:"latest_year"`
	PreviousYear  int     `json:"previous_year"`
	LatestValue   float64 `json:"latest_value_usd_millions"`
	PreviousValue float64 `json:"previous_value_usd_millions"`
	GrowthPercent float64 `json:"growth_rate_percent"`
}

// TopProducts returns the n largest exports of year, largest first. n <= 0 returns all.
func TopProducts(records []model.ExportRecord, year, n int) []model.ExportRecord {
	out := make([]model.ExportRecord, 0)
	for _, r := range records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ValueUSDMillions > out[j].ValueUSDMillions
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Years returns the distinct years present in records, most recent first
func Years(records []model.ExportRecord) []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, r := range records {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// LatestYear returns the most recent year in records, or 0 when empty
func LatestYear(records []model.ExportRecord) int {
	if years := Years(records); len(years) > 0 {
		return years[0]
	}
	return 0
}

// ComputeSummary derives the headline metrics from exports and partners
func ComputeSummary(records []model.ExportRecord, partners []model.TradePartner) Summary {
	s := Summary{LatestYear: LatestYear(records)}

	top := 0.0
	for _, r := range records {
		if r.Year != s.LatestYear {
			continue
		}
		s.TotalExports += r.ValueUSDMillions
		if s.TopProduct == "" || r.ValueUSDMillions > top {
			top = r.ValueUSDMillions
			s.TopProduct = r.Product
		}
	}
	s.TotalExports = round2(s.TotalExports)

	sorted := append([]model.TradePartner(nil), partners...)
	sortPartners(sorted)
	if len(sorted) > 0 {
		s.TopPartner = sorted[0].Country
	}
	for _, p := range partners {
		s.TradeBalance += p.BalanceUSDMillions
	}
	s.TradeBalance = round2(s.TradeBalance)

	s.BalanceLabel = BalanceDeficit
	if s.TradeBalance > 0 {
		s.BalanceLabel = BalanceSurplus
	}
	return s
}

// GrowthTable computes the latest year-over-year growth of every category.
// Categories without a previous-year value are skipped.
func GrowthTable(trends []model.TrendPoint) []GrowthRow {
	latest := 0
	for _, t := range trends {
		if t.Year > latest {
			latest = t.Year
		}
	}
	if latest == 0 {
		return nil
	}
	previous := latest - 1

	prevValues := make(map[string]float64)
	for _, t := range trends {
		if t.Year == previous {
			prevValues[t.Category] = t.ValueUSDMillions
		}
	}

	rows := make([]GrowthRow, 0)
	for _, t := range trends {
		if t.Year != latest {
			continue
		}
		prev, ok := prevValues[t.Category]
		if !ok || prev == 0 {
			continue
		}
		rows = append(rows, GrowthRow{
			Category:      t.Category,
			LatestYear:    latest,
			PreviousYear:  previous,
			LatestValue:   t.ValueUSDMillions,
			PreviousValue: prev,
			GrowthPercent: round2((t.ValueUSDMillions - prev) / prev * 100),
		})
	}
	return rows
}

// ComplexityByRCA returns a copy of rows ordered by RCA, highest first
func ComplexityByRCA(rows []model.ProductComplexity) []model.ProductComplexity {
	out := append([]model.ProductComplexity(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RCA > out[j].RCA
	})
	return out
}

// Categories returns trend categories in order of first appearance
func Categories(trends []model.TrendPoint) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range trends {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}
