package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panelwright/nestcut/internal/model"
)

func sampleProject() Project {
	p := New("wardrobe")
	p.Parts = []model.Part{
		{ID: "p1", Label: "side", Length: 2000, Width: 600, Quantity: 2, Grain: model.GrainAlongLength},
		{ID: "p2", Label: "shelf", Length: 900, Width: 550, Quantity: 4, Band: model.BandEdges{Top: true}},
	}
	p.Stocks = []model.StockSheet{
		{ID: "s1", Label: "MDF", Length: 2440, Width: 1220, Quantity: 0, PricePerSheet: 35},
	}
	return p
}

func TestSaveAndLoadProjectJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardrobe.json")

	if err := Save(path, sampleProject()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "wardrobe" {
		t.Errorf("expected name wardrobe, got %s", loaded.Name)
	}
	if len(loaded.Parts) != 2 || len(loaded.Stocks) != 1 {
		t.Errorf("unexpected counts: %d parts, %d stocks", len(loaded.Parts), len(loaded.Stocks))
	}
	if loaded.Parts[0].Grain != model.GrainAlongLength {
		t.Errorf("grain did not survive the round trip: %v", loaded.Parts[0].Grain)
	}
	if !loaded.Parts[1].Band.Top {
		t.Error("band edges did not survive the round trip")
	}
	if loaded.Options.Kerf != model.DefaultOptions().Kerf {
		t.Errorf("unexpected kerf %v", loaded.Options.Kerf)
	}
}

func TestSaveAndLoadProjectYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardrobe.yaml")

	if err := Save(path, sampleProject()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Parts) != 2 {
		t.Errorf("expected 2 parts, got %d", len(loaded.Parts))
	}
	if loaded.Stocks[0].PricePerSheet != 35 {
		t.Errorf("price did not survive the round trip: %v", loaded.Stocks[0].PricePerSheet)
	}
}

func TestLoadProject_NameDefaultsToFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitchen.json")
	p := sampleProject()
	p.Name = ""
	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "kitchen" {
		t.Errorf("expected name kitchen, got %s", loaded.Name)
	}
}

func TestLoadProject_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "result.json")
	result := model.LayoutResult{
		Sheets: []model.SheetLayout{{
			Stock: model.StockSheet{Label: "MDF", Length: 1000, Width: 1000},
			Placements: []model.Placement{
				{PartID: "p1", Label: "side", PlacedWidth: 600, PlacedHeight: 400},
			},
		}},
	}

	if err := SaveResult(path, "wardrobe", result); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	loaded, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}
	if loaded.Project != "wardrobe" {
		t.Errorf("expected project wardrobe, got %s", loaded.Project)
	}
	if loaded.CreatedAt == "" {
		t.Error("expected a timestamp")
	}
	if len(loaded.Result.Sheets) != 1 || len(loaded.Result.Sheets[0].Placements) != 1 {
		t.Error("layout did not survive the round trip")
	}
}

func TestLoadResult_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadResult(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}
