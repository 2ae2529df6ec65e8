// Package costing turns a packing result into a priced bill of materials.
// All money math uses decimals so repeated runs over the same layout produce
// byte-identical invoices.
package costing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/panelwright/nestcut/internal/model"
)

// Rates holds the unit prices applied to a layout. Zero-valued rates simply
// produce no line item for that concern.
type Rates struct {
	BandPerMeter  map[string]float64 `json:"band_per_meter" yaml:"band_per_meter"`   // by thickness class
	CutPerMeter   float64            `json:"cut_per_meter" yaml:"cut_per_meter"`     // saw time, per meter of cut
	BackerPerUnit float64            `json:"backer_per_unit" yaml:"backer_per_unit"` // per fractional backer sheet
}

// LineItem is one priced row of the invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice is the full costing of one layout result.
type Invoice struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// LoadRates reads a rates file, YAML or JSON by extension.
func LoadRates(path string) (Rates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to read rates file: %w", err)
	}

	var rates Rates
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &rates)
	} else {
		err = json.Unmarshal(data, &rates)
	}
	if err != nil {
		return Rates{}, fmt.Errorf("failed to parse rates file: %w", err)
	}
	return rates, nil
}

func line(desc string, qty decimal.Decimal, unit string, price float64) LineItem {
	up := decimal.NewFromFloat(price)
	return LineItem{
		Description: desc,
		Quantity:    qty,
		Unit:        unit,
		UnitPrice:   up,
		Total:       qty.Mul(up).Round(2),
	}
}

// Estimate prices a layout result. Sheet consumption is charged per whole
// sheet opened at the stock's own price; banding and cutting come from the
// run statistics. Line items appear in a fixed order so the invoice is
// stable across runs.
func Estimate(result model.LayoutResult, rates Rates) Invoice {
	var items []LineItem

	// Whole sheets opened, grouped by label, priced from the stock record.
	type sheetGroup struct {
		count int
		price float64
	}
	groups := map[string]sheetGroup{}
	for _, sl := range result.Sheets {
		g := groups[sl.Stock.Label]
		g.count++
		g.price = sl.Stock.PricePerSheet
		groups[sl.Stock.Label] = g
	}
	labels := lo.Keys(groups)
	sort.Strings(labels)
	for _, label := range labels {
		g := groups[label]
		if g.price <= 0 {
			continue
		}
		items = append(items, line("Sheet: "+label, decimal.NewFromInt(int64(g.count)), "sheet", g.price))
	}

	classes := lo.Keys(result.Stats.BandingByClass)
	sort.Strings(classes)
	for _, class := range classes {
		price := rates.BandPerMeter[class]
		length := result.Stats.BandingByClass[class]
		if price <= 0 || length <= 0 {
			continue
		}
		meters := decimal.NewFromFloat(length / 1000.0).Round(3)
		items = append(items, line("Edge banding "+class, meters, "m", price))
	}

	if rates.CutPerMeter > 0 && result.Stats.TotalCutLength > 0 {
		meters := decimal.NewFromFloat(result.Stats.TotalCutLength / 1000.0).Round(3)
		items = append(items, line("Cutting", meters, "m", rates.CutPerMeter))
	}

	if rates.BackerPerUnit > 0 && result.Stats.BackerSheets > 0 {
		qty := decimal.NewFromFloat(result.Stats.BackerSheets).Round(3)
		items = append(items, line("Laminate backer", qty, "sheet", rates.BackerPerUnit))
	}

	total := lo.Reduce(items, func(acc decimal.Decimal, it LineItem, _ int) decimal.Decimal {
		return acc.Add(it.Total)
	}, decimal.Zero)

	return Invoice{Items: items, Total: total}
}
