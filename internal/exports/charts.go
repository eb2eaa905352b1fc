package exports

import (
	"fmt"

	"github.com/ytget/ytdash/internal/model"
)

// Chart types
const (
	ChartTreemap = "treemap"
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartScatter = "scatter"
)

// Chart names accepted by BuildChart
const (
	ChartNameTreemap    = "treemap"
	ChartNamePartners   = "partners"
	ChartNameTrends     = "trends"
	ChartNameComplexity = "complexity"
	ChartNameBalance    = "balance"
)

// ChartNames lists every chart the dashboard offers
var ChartNames = []string{ChartNameTreemap, ChartNamePartners, ChartNameTrends, ChartNameComplexity, ChartNameBalance}

// Chart sizes and limits
const (
	TreemapTopN     = 15
	PartnersTopN    = 10
	TallChartHeight = 600
	ChartHeight     = 500
	bubbleScale     = 3
	quadrantLine    = 0.5
)

// Colors
const (
	colorLightBlue  = "#ADD8E6"
	colorLightGreen = "#90EE90"
	colorLightCoral = "#F08080"
	colorGray       = "#808080"
)

// Set3Palette is the qualitative palette used for category series
var Set3Palette = []string{
	"#8DD3C7", "#FFFFB3", "#BEBADA", "#FB8072", "#80B1D3", "#FDB462",
	"#B3DE69", "#FCCDE5", "#D9D9D9", "#BC80BD", "#CCEBC5", "#FFED6F",
}

// viridisScale maps RCA values to bubble colors
var viridisScale = []string{"#440154", "#3B528B", "#21918C", "#5EC962", "#FDE725"}

// ChartConfig describes a chart independently of the renderer
type ChartConfig struct {
	ChartType      string          `json:"chartType"`
	Title          string          `json:"title"`
	XAxis          string          `json:"xAxis,omitempty"`
	YAxis          string          `json:"yAxis,omitempty"`
	Series         []ChartSeries   `json:"series"`
	Colors         []string        `json:"colors,omitempty"`
	ShowLegend     bool            `json:"showLegend"`
	Horizontal     bool            `json:"horizontal,omitempty"`
	BarMode        string          `json:"barMode,omitempty"`
	ReferenceLines []ReferenceLine `json:"referenceLines,omitempty"`
	Height         int             `json:"height"`
}

// ChartSeries is one data series
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single data point. X and Size are used by scatter charts,
// Share carries the market share shown on treemap tiles.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	X     float64 `json:"x,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Share float64 `json:"share,omitempty"`
}

// ReferenceLine is a dashed guide line at a fixed axis value
type ReferenceLine struct {
	Axis  string  `json:"axis"` // "x" or "y"
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ExportTreemap shows the largest export products of year
func ExportTreemap(records []model.ExportRecord, year int) *ChartConfig {
	top := TopProducts(records, year, TreemapTopN)
	points := make([]ChartPoint, 0, len(top))
	for _, r := range top {
		points = append(points, ChartPoint{Label: r.Product, Value: r.ValueUSDMillions, Share: r.MarketSharePercent})
	}
	return &ChartConfig{
		ChartType: ChartTreemap,
		Title:     fmt.Sprintf("Uruguay Export Products - %d", year),
		YAxis:     "Export Value (USD Millions)",
		Series:    []ChartSeries{{Name: "Exports", Data: points}},
		Colors:    Set3Palette,
		Height:    TallChartHeight,
	}
}

// TradePartnersChart is a horizontal bar chart of the top export partners.
// Bars are in ascending order so the largest partner is drawn on top.
func TradePartnersChart(partners []model.TradePartner) *ChartConfig {
	top := topPartners(partners)
	points := make([]ChartPoint, 0, len(top))
	for i := len(top) - 1; i >= 0; i-- {
		points = append(points, ChartPoint{Label: top[i].Country, Value: top[i].ExportsUSDMillions})
	}
	return &ChartConfig{
		ChartType:  ChartBar,
		Title:      "Top 10 Export Partners",
		XAxis:      "Export Value (USD Millions)",
		YAxis:      "Country",
		Series:     []ChartSeries{{Name: "Exports", Data: points, Color: colorLightBlue}},
		Colors:     []string{colorLightBlue},
		Horizontal: true,
		Height:     ChartHeight,
	}
}

// ExportTrendsChart draws one line per category over the years
func ExportTrendsChart(trends []model.TrendPoint) *ChartConfig {
	categories := Categories(trends)
	byCategory := make(map[string][]ChartPoint, len(categories))
	minYear, maxYear := 0, 0
	for _, t := range trends {
		byCategory[t.Category] = append(byCategory[t.Category], ChartPoint{
			Label: fmt.Sprint(t.Year),
			X:     float64(t.Year),
			Value: t.ValueUSDMillions,
		})
		if minYear == 0 || t.Year < minYear {
			minYear = t.Year
		}
		if t.Year > maxYear {
			maxYear = t.Year
		}
	}

	series := make([]ChartSeries, 0, len(categories))
	colors := make([]string, 0, len(categories))
	for i, c := range categories {
		color := Set3Palette[i%len(Set3Palette)]
		series = append(series, ChartSeries{Name: c, Data: byCategory[c], Color: color})
		colors = append(colors, color)
	}

	title := "Uruguay Export Trends by Category"
	if minYear > 0 {
		title = fmt.Sprintf("%s (%d-%d)", title, minYear, maxYear)
	}
	return &ChartConfig{
		ChartType:  ChartLine,
		Title:      title,
		XAxis:      "Year",
		YAxis:      "Export Value (USD Millions)",
		Series:     series,
		Colors:     colors,
		ShowLegend: true,
		Height:     ChartHeight,
	}
}

// ComplexityScatter places products by complexity and opportunity, sized by RCA
func ComplexityScatter(rows []model.ProductComplexity) *ChartConfig {
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{
			Label: r.Name,
			X:     r.Complexity,
			Value: r.Opportunity,
			Size:  r.RCA * bubbleScale,
		})
	}
	return &ChartConfig{
		ChartType: ChartScatter,
		Title:     "Product Complexity vs Export Opportunity",
		XAxis:     "Product Complexity Index",
		YAxis:     "Opportunity Gain Index",
		Series:    []ChartSeries{{Name: "Products", Data: points}},
		Colors:    viridisScale,
		ReferenceLines: []ReferenceLine{
			{Axis: "y", Value: quadrantLine, Color: colorGray},
			{Axis: "x", Value: quadrantLine, Color: colorGray},
		},
		Height: TallChartHeight,
	}
}

// TradeBalanceChart stacks exports above and imports below zero per partner
func TradeBalanceChart(partners []model.TradePartner) *ChartConfig {
	top := topPartners(partners)
	exports := make([]ChartPoint, 0, len(top))
	imports := make([]ChartPoint, 0, len(top))
	for _, p := range top {
		exports = append(exports, ChartPoint{Label: p.Country, Value: p.ExportsUSDMillions})
		imports = append(imports, ChartPoint{Label: p.Country, Value: -p.ImportsUSDMillions})
	}
	return &ChartConfig{
		ChartType: ChartBar,
		Title:     "Trade Balance with Top Partners",
		XAxis:     "Country",
		YAxis:     "Trade Value (USD Millions)",
		Series: []ChartSeries{
			{Name: "Exports", Data: exports, Color: colorLightGreen},
			{Name: "Imports", Data: imports, Color: colorLightCoral},
		},
		Colors:     []string{colorLightGreen, colorLightCoral},
		ShowLegend: true,
		BarMode:    "relative",
		Height:     ChartHeight,
	}
}

// BuildChart returns the named chart for ds. year selects the treemap year;
// 0 means the latest year.
func BuildChart(ds *model.Dataset, name string, year int) (*ChartConfig, error) {
	switch name {
	case ChartNameTreemap:
		if year == 0 {
			year = LatestYear(ds.Exports)
		}
		return ExportTreemap(ds.Exports, year), nil
	case ChartNamePartners:
		return TradePartnersChart(ds.Partners), nil
	case ChartNameTrends:
		return ExportTrendsChart(ds.Trends), nil
	case ChartNameComplexity:
		return ComplexityScatter(ds.Complexity), nil
	case ChartNameBalance:
		return TradeBalanceChart(ds.Partners), nil
	}
	return nil, fmt.Errorf("%w: chart %q", ErrUnknownDataset, name)
}

func topPartners(partners []model.TradePartner) []model.TradePartner {
	sorted := append([]model.TradePartner(nil), partners...)
	sortPartners(sorted)
	if len(sorted) > PartnersTopN {
		sorted = sorted[:PartnersTopN]
	}
	return sorted
}
