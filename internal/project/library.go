package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/panelwright/nestcut/internal/model"
)

// StockLibrary is the user's persistent catalogue of sheet types and saved
// offcuts, reusable across projects.
type StockLibrary struct {
	Stocks  []model.StockSheet `json:"stocks"`
	Offcuts []model.Offcut     `json:"offcuts,omitempty"`
}

// DefaultLibraryPath returns ~/.nestcut/stock.json.
func DefaultLibraryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nestcut", "stock.json"), nil
}

// DefaultLibrary returns the common metric sheet sizes a new install starts
// with.
func DefaultLibrary() StockLibrary {
	return StockLibrary{Stocks: []model.StockSheet{
		model.NewStockSheet("MDF 2440x1220", 2440, 1220, 0),
		model.NewStockSheet("Plywood 2440x1220", 2440, 1220, 0),
		model.NewStockSheet("Melamine 2800x2070", 2800, 2070, 0),
	}}
}

// SaveLibrary writes the library to the specified JSON file, creating parent
// directories if they do not exist.
func SaveLibrary(path string, lib StockLibrary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadLibrary reads the library from the specified JSON file. If the file
// does not exist, it returns the default library and saves it.
func LoadLibrary(path string) (StockLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lib := DefaultLibrary()
			if saveErr := SaveLibrary(path, lib); saveErr != nil {
				return lib, saveErr
			}
			return lib, nil
		}
		return StockLibrary{}, err
	}
	var lib StockLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return StockLibrary{}, err
	}
	return lib, nil
}

// MergeLibrary merges an imported library into an existing one. Entries with
// duplicate IDs are skipped.
func MergeLibrary(existing, imported StockLibrary) StockLibrary {
	stockIDs := make(map[string]bool, len(existing.Stocks))
	for _, s := range existing.Stocks {
		stockIDs[s.ID] = true
	}
	for _, s := range imported.Stocks {
		if !stockIDs[s.ID] {
			existing.Stocks = append(existing.Stocks, s)
			stockIDs[s.ID] = true
		}
	}

	offcutIDs := make(map[string]bool, len(existing.Offcuts))
	for _, o := range existing.Offcuts {
		offcutIDs[o.ID] = true
	}
	for _, o := range imported.Offcuts {
		if !offcutIDs[o.ID] {
			existing.Offcuts = append(existing.Offcuts, o)
			offcutIDs[o.ID] = true
		}
	}
	return existing
}

// BankOffcuts appends newly detected offcuts to the library, skipping IDs
// already present.
func BankOffcuts(lib StockLibrary, offcuts []model.Offcut) StockLibrary {
	return MergeLibrary(lib, StockLibrary{Offcuts: offcuts})
}
