package exports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ytget/ytdash/internal/model"
)

// OEC OLAP API constants
const (
	OECSourceName     = "oec"
	DefaultOECBaseURL = "https://oec.world/olap-proxy/data"
	OECCountryCode    = "ury"
	oecCountryID      = "sa" + OECCountryCode
	oecCube           = "trade_i_baci_a_92"
	oecMeasure        = "Trade Value"
	oecTimeout        = 30 * time.Second
	usdPerMillion     = 1_000_000
)

// OEC query dimensions
const (
	dimYear     = "Year"
	dimProduct  = "HS2"
	dimExporter = "Exporter Country"
	dimImporter = "Importer Country"
)

type oecResponse struct {
	Data []map[string]any `json:"data"`
}

// OECSource reads Uruguay trade flows from the Observatory of Economic Complexity.
// The API has no category trends or complexity rankings, so those tables come
// from the sample data.
type OECSource struct {
	baseURL  string
	fromYear int
	toYear   int
	http     *resty.Client
}

// NewOECSource creates an OEC source. Empty baseURL uses DefaultOECBaseURL.
func NewOECSource(baseURL string) *OECSource {
	if baseURL == "" {
		baseURL = DefaultOECBaseURL
	}
	return &OECSource{
		baseURL:  strings.TrimRight(baseURL, "/"),
		fromYear: sampleExportFromYear,
		toYear:   sampleExportToYear,
		http:     resty.New().SetTimeout(oecTimeout),
	}
}

// SetYears limits the queried year range
func (o *OECSource) SetYears(from, to int) {
	o.fromYear, o.toYear = from, to
}

// Name implements Source
func (*OECSource) Name() string { return OECSourceName }

// Load implements Source
func (o *OECSource) Load(ctx context.Context) (*model.Dataset, error) {
	exports, err := o.loadExports(ctx)
	if err != nil {
		return nil, err
	}
	partners, err := o.loadPartners(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Dataset{
		Exports:    exports,
		Partners:   partners,
		Trends:     SampleTrends(),
		Complexity: SampleComplexity(),
		Source:     OECSourceName,
		LoadedAt:   time.Now(),
	}, nil
}

func (o *OECSource) years() string {
	years := make([]string, 0, o.toYear-o.fromYear+1)
	for y := o.fromYear; y <= o.toYear; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return strings.Join(years, ",")
}

func (o *OECSource) query(ctx context.Context, params map[string]string) ([]map[string]any, error) {
	var resp oecResponse
	r, err := o.http.R().SetContext(ctx).
		SetQueryParam("cube", oecCube).
		SetQueryParam("measures", oecMeasure).
		SetQueryParams(params).
		SetResult(&resp).
		Get(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("oec request: %w", err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("oec request: %s; body: %s", r.Status(), r.String())
	}
	return resp.Data, nil
}

func (o *OECSource) loadExports(ctx context.Context) ([]model.ExportRecord, error) {
	rows, err := o.query(ctx, map[string]string{
		"drilldowns": dimYear + "," + dimProduct,
		dimExporter:  oecCountryID,
		dimYear:      o.years(),
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[int]float64)
	records := make([]model.ExportRecord, 0, len(rows))
	for _, row := range rows {
		year := intField(row, dimYear)
		value := floatField(row, oecMeasure)
		product := stringField(row, dimProduct)
		if year == 0 || product == "" {
			continue
		}
		totals[year] += value
		records = append(records, model.ExportRecord{
			Year:             year,
			Product:          product,
			ValueUSDMillions: value,
		})
	}

	for i := range records {
		if total := totals[records[i].Year]; total > 0 {
			records[i].MarketSharePercent = round2(records[i].ValueUSDMillions / total * 100)
		}
		records[i].ValueUSDMillions = round2(records[i].ValueUSDMillions / usdPerMillion)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		return records[i].ValueUSDMillions > records[j].ValueUSDMillions
	})
	return records, nil
}

func (o *OECSource) loadPartners(ctx context.Context) ([]model.TradePartner, error) {
	year := strconv.Itoa(o.toYear)
	exportRows, err := o.query(ctx, map[string]string{
		"drilldowns": dimImporter,
		dimExporter:  oecCountryID,
		dimYear:      year,
	})
	if err != nil {
		return nil, err
	}
	importRows, err := o.query(ctx, map[string]string{
		"drilldowns": dimExporter,
		dimImporter:  oecCountryID,
		dimYear:      year,
	})
	if err != nil {
		return nil, err
	}

	exports := make(map[string]float64, len(exportRows))
	for _, row := range exportRows {
		if country := stringField(row, dimImporter); country != "" {
			exports[country] += floatField(row, oecMeasure)
		}
	}
	imports := make(map[string]float64, len(importRows))
	for _, row := range importRows {
		if country := stringField(row, dimExporter); country != "" {
			imports[country] += floatField(row, oecMeasure)
		}
	}

	// partners Uruguay only imports from still count towards the trade balance
	countries := make(map[string]struct{}, len(exports)+len(imports))
	for c := range exports {
		countries[c] = struct{}{}
	}
	for c := range imports {
		countries[c] = struct{}{}
	}

	partners := make([]model.TradePartner, 0, len(countries))
	for country := range countries {
		exp := exports[country] / usdPerMillion
		imp := imports[country] / usdPerMillion
		partners = append(partners, model.TradePartner{
			Country:            country,
			ExportsUSDMillions: round2(exp),
			ImportsUSDMillions: round2(imp),
			BalanceUSDMillions: round2(exp - imp),
		})
	}
	sortPartners(partners)
	return partners, nil
}

func stringField(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func floatField(row map[string]any, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func intField(row map[string]any, key string) int {
	return int(floatField(row, key))
}
