// Package project persists cut lists, stock libraries, and packing results
// on disk. Projects round-trip through JSON or YAML, chosen by file
// extension.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/panelwright/nestcut/internal/model"
)

// Project is a saved cut job: the parts to produce, the stock to cut from,
// and the packing options.
type Project struct {
	Name    string             `json:"name" yaml:"name"`
	Parts   []model.Part       `json:"parts" yaml:"parts"`
	Stocks  []model.StockSheet `json:"stocks" yaml:"stocks"`
	Options model.Options      `json:"options" yaml:"options"`
}

// New returns an empty project with default options.
func New(name string) Project {
	return Project{Name: name, Options: model.DefaultOptions()}
}

// Save writes the project to path, creating parent directories as needed.
// YAML is used for .yaml/.yml paths, indented JSON otherwise.
func Save(path string, p Project) error {
	data, err := marshalByExt(path, p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from path, decoding by extension.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}
	var p Project
	if isYAML(path) {
		err = yaml.Unmarshal(data, &p)
	} else {
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// SavedResult wraps a layout result with enough metadata to reload it later.
type SavedResult struct {
	Version   string             `json:"version" yaml:"version"`
	CreatedAt string             `json:"created_at" yaml:"created_at"`
	Project   string             `json:"project" yaml:"project"`
	Result    model.LayoutResult `json:"result" yaml:"result"`
}

// SaveResult writes a packing result next to its project.
func SaveResult(path, projectName string, result model.LayoutResult) error {
	saved := SavedResult{
		Version:   "1",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Project:   projectName,
		Result:    result,
	}
	data, err := marshalByExt(path, saved)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadResult reads a previously saved packing result.
func LoadResult(path string) (SavedResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SavedResult{}, err
	}
	var saved SavedResult
	if isYAML(path) {
		err = yaml.Unmarshal(data, &saved)
	} else {
		err = json.Unmarshal(data, &saved)
	}
	if err != nil {
		return SavedResult{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	if saved.Version == "" {
		return SavedResult{}, fmt.Errorf("invalid result file: missing version field")
	}
	return saved, nil
}

func marshalByExt(path string, v any) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
