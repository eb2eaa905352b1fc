package exports

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ytget/ytdash/internal/model"
)

// ErrUnknownDataset is returned for dataset or chart names that do not exist
var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset names accepted by BuildTable
const (
	TableExports    = "exports"
	TablePartners   = "partners"
	TableTrends     = "trends"
	TableComplexity = "complexity"
	TableGrowth     = "growth"
)

// TableNames lists every exportable table
var TableNames = []string{TableExports, TablePartners, TableTrends, TableComplexity, TableGrowth}

// Column headers
const (
	colYear        = "Year"
	colProduct     = "Product"
	colCountry     = "Country"
	colCategory    = "Category"
	colExportValue = "Export Value (USD Millions)"
	colMarketShare = "Market Share (%)"
	colExports     = "Exports (USD Millions)"
	colImports     = "Imports (USD Millions)"
	colBalance     = "Trade Balance (USD Millions)"
	colComplexity  = "Complexity Index"
	colOpportunity = "Opportunity Index"
	colRCA         = "RCA Index"
	colGrowthRate  = "Growth Rate (%)"
	yearValueFmt   = "%d Value (USD Millions)"
)

// Table is a rendered dataset: human-readable headers, formatted cells and
// the typed rows they were built from
type Table struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"-"`
	Data    any        `json:"rows"`
}

// BuildTable renders the named dataset. For exports, year > 0 keeps only
// that year, sorted by value.
func BuildTable(ds *model.Dataset, name string, year int) (*Table, error) {
	switch name {
	case TableExports:
		return exportsTable(ds.Exports, year), nil
	case TablePartners:
		return partnersTable(ds.Partners), nil
	case TableTrends:
		return trendsTable(ds.Trends), nil
	case TableComplexity:
		return complexityTable(ComplexityByRCA(ds.Complexity)), nil
	case TableGrowth:
		return growthTable(GrowthTable(ds.Trends)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

func exportsTable(records []model.ExportRecord, year int) *Table {
	title := "Export Products"
	if year > 0 {
		records = TopProducts(records, year, 0)
		title = fmt.Sprintf("Export Products - %d", year)
	}
	t := &Table{
		Name:    TableExports,
		Title:   title,
		Columns: []string{colYear, colProduct, colExportValue, colMarketShare},
		Data:    records,
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{strconv.Itoa(r.Year), r.Product, formatNumber(r.ValueUSDMillions), formatNumber(r.MarketSharePercent)})
	}
	return t
}

func partnersTable(partners []model.TradePartner) *Table {
	t := &Table{
		Name:    TablePartners,
		Title:   "Trade Partners Details",
		Columns: []string{colCountry, colExports, colImports, colBalance},
		Data:    partners,
	}
	for _, p := range partners {
		t.Rows = append(t.Rows, []string{p.Country, formatNumber(p.ExportsUSDMillions), formatNumber(p.ImportsUSDMillions), formatNumber(p.BalanceUSDMillions)})
	}
	return t
}

func trendsTable(trends []model.TrendPoint) *Table {
	t := &Table{
		Name:    TableTrends,
		Title:   "Export Trends by Category",
		Columns: []string{colYear, colCategory, colExportValue},
		Data:    trends,
	}
	for _, p := range trends {
		t.Rows = append(t.Rows, []string{strconv.Itoa(p.Year), p.Category, formatNumber(p.ValueUSDMillions)})
	}
	return t
}

func complexityTable(rows []model.ProductComplexity) *Table {
	t := &Table{
		Name:    TableComplexity,
		Title:   "Product Complexity Details",
		Columns: []string{colProduct, colComplexity, colOpportunity, colRCA},
		Data:    rows,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Name, formatNumber(r.Complexity), formatNumber(r.Opportunity), formatNumber(r.RCA)})
	}
	return t
}

func growthTable(rows []GrowthRow) *Table {
	latest, previous := 0, 0
	if len(rows) > 0 {
		latest, previous = rows[0].LatestYear, rows[0].PreviousYear
	}
	t := &Table{
		Name:  TableGrowth,
		Title: "Growth Analysis by Category",
		Columns: []string{
			colCategory,
			fmt.Sprintf(yearValueFmt, latest),
			fmt.Sprintf(yearValueFmt, previous),
			colGrowthRate,
		},
		Data: rows,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Category, formatNumber(r.LatestValue), formatNumber(r.PreviousValue), formatNumber(r.GrowthPercent)})
	}
	return t
}

// WriteCSV writes the header row followed by every row of t
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON writes t with its typed rows
func WriteJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
