package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/panelwright/nestcut/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Length,Width,Qty\nShelf,600,300,2\nDoor,400,800,1\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Length;Width;Qty\nShelf;600;300;2\nDoor;400;800;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tLength\tWidth\tQty\nShelf\t600\t300\t2\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Length", "Width", "Quantity", "Grain", "Band", "Laminate"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Length: 1, Width: 2, Quantity: 3, Grain: 4, Band: 5, Laminate: 6}
	if mapping != want {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_CaseInsensitiveAliases(t *testing.T) {
	row := []string{"NAME", "LEN", "W", "PCS"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Quantity != 3 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
	if mapping.Grain != -1 {
		t.Errorf("grain column should be absent, got %d", mapping.Grain)
	}
}

func TestDetectColumns_NoHeaderFallsBackToPositional(t *testing.T) {
	row := []string{"Shelf", "600", "300", "2"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("numeric row must not be treated as a header")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Quantity != 3 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── Parse helper Tests ────────────────────────────────────

func TestParseGrain(t *testing.T) {
	cases := []struct {
		in   string
		want model.Grain
		ok   bool
	}{
		{"length", model.GrainAlongLength, true},
		{"Along Length", model.GrainAlongLength, true},
		{"width", model.GrainAlongWidth, true},
		{"vertical", model.GrainAlongWidth, true},
		{"", model.GrainAny, true},
		{"any", model.GrainAny, true},
		{"diagonal", model.GrainAny, false},
	}
	for _, tc := range cases {
		got, ok := ParseGrain(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseGrain(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseBand(t *testing.T) {
	got, ok := ParseBand("T+B")
	if !ok || !got.Top || !got.Bottom || got.Left || got.Right {
		t.Errorf("ParseBand(T+B) = (%+v, %v)", got, ok)
	}

	got, ok = ParseBand("all")
	if !ok || got.EdgeCount() != 4 {
		t.Errorf("ParseBand(all) = (%+v, %v)", got, ok)
	}

	if _, ok := ParseBand("T+X"); ok {
		t.Error("expected unknown edge letter to be rejected")
	}

	got, ok = ParseBand("")
	if !ok || got.HasAny() {
		t.Errorf("ParseBand empty = (%+v, %v)", got, ok)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_FullColumns(t *testing.T) {
	csv := "Label,Length,Width,Qty,Grain,Band,Laminate\n" +
		"Side,2000,600,2,length,T+B,no\n" +
		"Worktop,900,550,1,,all,yes\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}

	side := result.Parts[0]
	if side.Length != 2000 || side.Width != 600 || side.Quantity != 2 {
		t.Errorf("unexpected side part: %+v", side)
	}
	if side.Grain != model.GrainAlongLength {
		t.Errorf("expected grain along length, got %v", side.Grain)
	}
	if !side.Band.Top || !side.Band.Bottom || side.Band.Left {
		t.Errorf("unexpected band edges: %+v", side.Band)
	}

	worktop := result.Parts[1]
	if !worktop.Laminate {
		t.Error("expected laminate flag")
	}
	if worktop.Band.EdgeCount() != 4 {
		t.Errorf("expected all edges banded, got %+v", worktop.Band)
	}
}

func TestImportCSVFromReader_RowErrorsDoNotAbort(t *testing.T) {
	csv := "Label,Length,Width,Qty\n" +
		"Good,600,300,2\n" +
		"Bad,abc,300,2\n" +
		"AlsoGood,400,200,1\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Parts) != 2 {
		t.Errorf("expected 2 parts, got %d", len(result.Parts))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Invalid length") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestImportCSVFromReader_UnknownGrainWarns(t *testing.T) {
	csv := "Label,Length,Width,Qty,Grain\nShelf,600,300,2,diagonal\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(result.Parts))
	}
	if result.Parts[0].Grain != model.GrainAny {
		t.Errorf("expected grain to default to Any, got %v", result.Parts[0].Grain)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown grain direction") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected grain warning, got %v", result.Warnings)
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	data := "Label;Length;Width;Qty\nShelf;600;300;2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 1 || result.Parts[0].Length != 600 {
		t.Errorf("unexpected parts: %+v", result.Parts)
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	csv := "Label,Length,Qty\nShelf,600,2\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Width") {
		t.Errorf("expected missing-column error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"Label", "Length", "Width", "Qty", "Band"},
		{"Side", 2000, 600, 2, "L+R"},
		{"Shelf", 900, 550, 4, ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}
	if !result.Parts[0].Band.Left || !result.Parts[0].Band.Right {
		t.Errorf("unexpected band edges: %+v", result.Parts[0].Band)
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}
