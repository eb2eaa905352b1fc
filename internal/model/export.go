package model

import "time"

// ExportRecord is the yearly export value of a single product
type ExportRecord struct {
	Year               int     `json:"year"`
	Product            string  `json:"product"`
	ValueUSDMillions   float64 `json:"export_value_usd_millions"`
	MarketSharePercent float64 `json:"market_share_percent"`
}

// TradePartner aggregates bilateral trade with one country
type TradePartner struct {
	Country            string  `json:"country"`
	ExportsUSDMillions float64 `json:"export_value_usd_millions"`
	ImportsUSDMillions float64 `json:"import_value_usd_millions"`
	BalanceUSDMillions float64 `json:"trade_balance_usd_millions"`
}

// TrendPoint is the export value of a category in a given year
type TrendPoint struct {
	Year             int     `json:"year"`
	Category         string  `json:"category"`
	ValueUSDMillions float64 `json:"export_value_usd_millions"`
}

// ProductComplexity places a product on the complexity/opportunity map.
// RCA is the revealed comparative advantage index.
type ProductComplexity struct {
	Name        string  `json:"name"`
	Complexity  float64 `json:"complexity"`
	Opportunity float64 `json:"opportunity"`
	RCA         float64 `json:"rca"`
}

// Dataset bundles every table the export dashboard renders
type Dataset struct {
	Exports    []ExportRecord      `json:"exports"`
	Partners   []TradePartner      `json:"trade_partners"`
	Trends     []TrendPoint        `json:"trends"`
	Complexity []ProductComplexity `json:"complexity"`
	Source     string              `json:"source"`
	LoadedAt   time.Time           `json:"loaded_at"`
	Checksum   string              `json:"checksum,omitempty"`
}

// IsEmpty reports whether the dataset carries no rows at all
func (d *Dataset) IsEmpty() bool {
	return d == nil || (len(d.Exports) == 0 && len(d.Partners) == 0 && len(d.Trends) == 0 && len(d.Complexity) == 0)
}
