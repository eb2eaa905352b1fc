package exports

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/ytget/ytdash/internal/model"
)

// Sample generator constants
const (
	SampleSourceName = "sample"
	SampleSeed       = 42

	sampleExportFromYear = 2018
	sampleExportToYear   = 2023
	sampleTrendFromYear  = 2010
	sampleTrendToYear    = 2023
	exportGrowthRate     = 0.02
	trendGrowthRate      = 0.03
)

type baseValue struct {
	name  string
	value float64
}

// Uruguay's main export products with their base value in USD millions
var sampleProducts = []baseValue{
	{"Beef", 1500}, {"Soybeans", 1200}, {"Rice", 400}, {"Wheat", 300},
	{"Dairy Products", 600}, {"Wool", 200}, {"Leather", 150}, {"Pulp", 800},
	{"Fish", 100}, {"Citrus Fruits", 80}, {"Software Services", 500},
	{"Tourism Services", 300}, {"Electricity", 150}, {"Chemicals", 200},
	{"Textiles", 120}, {"Wine", 50}, {"Honey", 30}, {"Lumber", 100},
}

var samplePartners = []baseValue{
	{"China", 2000}, {"Brazil", 1500}, {"Argentina", 1200}, {"United States", 800},
	{"Germany", 600}, {"Netherlands", 500}, {"Italy", 400}, {"Spain", 350},
	{"Russia", 300}, {"India", 250}, {"Turkey", 200}, {"Egypt", 180},
	{"Saudi Arabia", 150}, {"Japan", 120}, {"South Korea", 100},
}

var sampleCategories = []baseValue{
	{"Agricultural Products", 3500},
	{"Livestock Products", 2000},
	{"Manufacturing", 1500},
	{"Services", 1000},
	{"Mining & Energy", 500},
}

var sampleComplexity = []model.ProductComplexity{
	{Name: "Beef", Complexity: 0.2, Opportunity: 0.3, RCA: 8.5},
	{Name: "Soybeans", Complexity: -0.1, Opportunity: 0.4, RCA: 12.3},
	{Name: "Software", Complexity: 1.8, Opportunity: 0.8, RCA: 2.1},
	{Name: "Rice", Complexity: 0.1, Opportunity: 0.2, RCA: 15.2},
	{Name: "Dairy", Complexity: 0.5, Opportunity: 0.5, RCA: 6.8},
	{Name: "Pulp", Complexity: 0.3, Opportunity: 0.3, RCA: 4.2},
	{Name: "Wool", Complexity: -0.2, Opportunity: 0.1, RCA: 25.6},
	{Name: "Leather", Complexity: 0.4, Opportunity: 0.2, RCA: 7.9},
	{Name: "Fish", Complexity: 0.1, Opportunity: 0.4, RCA: 3.2},
	{Name: "Wine", Complexity: 0.6, Opportunity: 0.6, RCA: 1.8},
	{Name: "Chemicals", Complexity: 1.2, Opportunity: 0.7, RCA: 1.5},
	{Name: "Machinery", Complexity: 1.5, Opportunity: 0.9, RCA: 0.8},
}

// SampleSource generates representative Uruguay trade data.
// Every table is generated from its own seeded generator, so the output is
// identical across calls and processes.
type SampleSource struct{}

// NewSampleSource creates the sample data source
func NewSampleSource() *SampleSource {
	return &SampleSource{}
}

// Name implements Source
func (*SampleSource) Name() string { return SampleSourceName }

// Load implements Source
func (s *SampleSource) Load(ctx context.Context) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &model.Dataset{
		Exports:    SampleExports(),
		Partners:   SamplePartners(),
		Trends:     SampleTrends(),
		Complexity: SampleComplexity(),
		Source:     SampleSourceName,
		LoadedAt:   time.Now(),
	}, nil
}

func newSampleRand() *rand.Rand {
	return rand.New(rand.NewSource(SampleSeed))
}

func uniform(r *rand.Rand, low, high float64) float64 {
	return low + r.Float64()*(high-low)
}

// SampleExports returns yearly export values per product for 2018-2023
func SampleExports() []model.ExportRecord {
	r := newSampleRand()
	records := make([]model.ExportRecord, 0, len(sampleProducts)*(sampleExportToYear-sampleExportFromYear+1))
	for year := sampleExportFromYear; year <= sampleExportToYear; year++ {
		yearFactor := 1 + float64(year-sampleExportFromYear)*exportGrowthRate
		for _, p := range sampleProducts {
			value := p.value * yearFactor * uniform(r, 0.8, 1.2)
			records = append(records, model.ExportRecord{
				Year:               year,
				Product:            p.name,
				ValueUSDMillions:   round2(value),
				MarketSharePercent: round2(uniform(r, 0.1, 15.0)),
			})
		}
	}
	return records
}

// SamplePartners returns trade with the main partners, sorted by exports descending
func SamplePartners() []model.TradePartner {
	r := newSampleRand()
	partners := make([]model.TradePartner, 0, len(samplePartners))
	for _, p := range samplePartners {
		exports := p.value * uniform(r, 0.8, 1.2)
		imports := exports * uniform(r, 0.3, 1.5)
		partners = append(partners, model.TradePartner{
			Country:            p.name,
			ExportsUSDMillions: round2(exports),
			ImportsUSDMillions: round2(imports),
			BalanceUSDMillions: round2(exports - imports),
		})
	}
	sortPartners(partners)
	return partners
}

// SampleTrends returns category totals for 2010-2023 with growth and an economic cycle
func SampleTrends() []model.TrendPoint {
	r := newSampleRand()
	points := make([]model.TrendPoint, 0, len(sampleCategories)*(sampleTrendToYear-sampleTrendFromYear+1))
	for year := sampleTrendFromYear; year <= sampleTrendToYear; year++ {
		offset := float64(year - sampleTrendFromYear)
		yearFactor := 1 + offset*trendGrowthRate
		cycleFactor := 1 + 0.1*math.Sin(offset*0.5)
		for _, c := range sampleCategories {
			value := c.value * yearFactor * cycleFactor * uniform(r, 0.9, 1.1)
			points = append(points, model.TrendPoint{
				Year:             year,
				Category:         c.name,
				ValueUSDMillions: round2(value),
			})
		}
	}
	return points
}

// SampleComplexity returns the product complexity table
func SampleComplexity() []model.ProductComplexity {
	out := make([]model.ProductComplexity, len(sampleComplexity))
	copy(out, sampleComplexity)
	return out
}

func sortPartners(partners []model.TradePartner) {
	sort.SliceStable(partners, func(i, j int) bool {
		if partners[i].ExportsUSDMillions != partners[j].ExportsUSDMillions {
			return partners[i].ExportsUSDMillions > partners[j].ExportsUSDMillions
		}
		return partners[i].Country < partners[j].Country
	})
}
