package costing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelwright/nestcut/internal/model"
)

func sampleResult() model.LayoutResult {
	stock := model.StockSheet{Label: "MDF 18", Length: 2440, Width: 1220, PricePerSheet: 35}
	return model.LayoutResult{
		Sheets: []model.SheetLayout{{Stock: stock}, {Stock: stock}},
		Stats: model.Stats{
			TotalCutLength: 12500, // 12.5 m
			BandingByClass: map[string]float64{
				model.BandClassStandard: 4000,
				model.BandClassLaminate: 1500,
			},
			BackerSheets: 0.4,
		},
	}
}

func sampleRates() Rates {
	return Rates{
		BandPerMeter: map[string]float64{
			model.BandClassStandard: 0.8,
			model.BandClassLaminate: 1.5,
		},
		CutPerMeter:   2,
		BackerPerUnit: 20,
	}
}

func TestEstimate(t *testing.T) {
	inv := Estimate(sampleResult(), sampleRates())

	require.Len(t, inv.Items, 5)
	assert.Equal(t, "Sheet: MDF 18", inv.Items[0].Description)
	assert.True(t, inv.Items[0].Total.Equal(decimal.NewFromInt(70)), "2 sheets at 35")

	assert.Equal(t, "Edge banding 16mm", inv.Items[1].Description)
	assert.True(t, inv.Items[1].Total.Equal(decimal.RequireFromString("3.2")), "4m at 0.80")

	assert.Equal(t, "Edge banding 32mm", inv.Items[2].Description)
	assert.True(t, inv.Items[2].Total.Equal(decimal.RequireFromString("2.25")))

	assert.Equal(t, "Cutting", inv.Items[3].Description)
	assert.True(t, inv.Items[3].Total.Equal(decimal.NewFromInt(25)))

	assert.Equal(t, "Laminate backer", inv.Items[4].Description)
	assert.True(t, inv.Items[4].Total.Equal(decimal.NewFromInt(8)))

	assert.True(t, inv.Total.Equal(decimal.RequireFromString("108.45")))
}

func TestEstimate_SkipsUnpricedConcerns(t *testing.T) {
	result := sampleResult()
	inv := Estimate(result, Rates{})

	require.Len(t, inv.Items, 1, "only the priced sheets remain")
	assert.Equal(t, "Sheet: MDF 18", inv.Items[0].Description)
}

func TestEstimate_UnpricedSheetsProduceNoItem(t *testing.T) {
	result := sampleResult()
	for i := range result.Sheets {
		result.Sheets[i].Stock.PricePerSheet = 0
	}
	inv := Estimate(result, Rates{})

	assert.Empty(t, inv.Items)
	assert.True(t, inv.Total.IsZero())
}

func TestLoadRates_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	data := "band_per_meter:\n  16mm: 0.8\ncut_per_meter: 2\nbacker_per_unit: 20\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	rates, err := LoadRates(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, rates.BandPerMeter["16mm"])
	assert.Equal(t, 2.0, rates.CutPerMeter)
	assert.Equal(t, 20.0, rates.BackerPerUnit)
}

func TestLoadRates_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	data := `{"band_per_meter":{"32mm":1.5},"cut_per_meter":1.25}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	rates, err := LoadRates(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, rates.BandPerMeter["32mm"])
	assert.Equal(t, 1.25, rates.CutPerMeter)
}

func TestLoadRates_MissingFile(t *testing.T) {
	_, err := LoadRates(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEstimate_Deterministic(t *testing.T) {
	a := Estimate(sampleResult(), sampleRates())
	b := Estimate(sampleResult(), sampleRates())
	require.Equal(t, len(a.Items), len(b.Items))
	for i := range a.Items {
		assert.Equal(t, a.Items[i].Description, b.Items[i].Description)
		assert.True(t, a.Items[i].Total.Equal(b.Items[i].Total))
	}
}
