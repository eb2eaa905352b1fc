package exports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOECSourceLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, oecCube, q.Get("cube"))
		assert.Equal(t, oecMeasure, q.Get("measures"))
		w.Header().Set("Content-Type", "application/json")

		switch q.Get("drilldowns") {
		case "Year,HS2":
			assert.Equal(t, oecCountryID, q.Get(dimExporter))
			assert.Equal(t, "2022,2023", q.Get(dimYear))
			_, _ = w.Write([]byte(`{"data":[
				{"Year":2023,"HS2":"Meat","Trade Value":3000000000},
				{"Year":2023,"HS2":"Cereals","Trade Value":1000000000},
				{"Year":2022,"HS2":"Meat","Trade Value":2500000000}
			]}`))
		case dimImporter:
			_, _ = w.Write([]byte(`{"data":[
				{"Importer Country":"Brazil","Trade Value":1500000000},
				{"Importer Country":"China","Trade Value":2000000000}
			]}`))
		case dimExporter:
			assert.Equal(t, oecCountryID, q.Get(dimImporter))
			_, _ = w.Write([]byte(`{"data":[
				{"Exporter Country":"China","Trade Value":2500000000},
				{"Exporter Country":"Argentina","Trade Value":800000000}
			]}`))
		default:
			t.Errorf("Unexpected drilldowns %q", q.Get("drilldowns"))
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	src := NewOECSource(srv.URL)
	src.SetYears(2022, 2023)
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OECSourceName, ds.Source)
	require.Len(t, ds.Exports, 3)
	assert.Equal(t, 2022, ds.Exports[0].Year)
	assert.Equal(t, 100.0, ds.Exports[0].MarketSharePercent)
	assert.Equal(t, "Meat", ds.Exports[1].Product)
	assert.Equal(t, 3000.0, ds.Exports[1].ValueUSDMillions)
	assert.Equal(t, 75.0, ds.Exports[1].MarketSharePercent)

	require.Len(t, ds.Partners, 3)
	assert.Equal(t, "China", ds.Partners[0].Country)
	assert.Equal(t, 2500.0, ds.Partners[0].ImportsUSDMillions)
	assert.Equal(t, -500.0, ds.Partners[0].BalanceUSDMillions)
	assert.Equal(t, "Brazil", ds.Partners[1].Country)
	assert.Equal(t, 0.0, ds.Partners[1].ImportsUSDMillions)

	// import-only partners are kept so the trade balance includes them
	assert.Equal(t, "Argentina", ds.Partners[2].Country)
	assert.Equal(t, 0.0, ds.Partners[2].ExportsUSDMillions)
	assert.Equal(t, -800.0, ds.Partners[2].BalanceUSDMillions)
	assert.Equal(t, 200.0, ComputeSummary(ds.Exports, ds.Partners).TradeBalance)

	assert.Len(t, ds.Trends, 70)
	assert.Len(t, ds.Complexity, 12)
}

func TestOECSourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewOECSource(srv.URL).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
