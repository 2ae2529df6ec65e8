// Package importer reads cut lists from CSV, Excel, and DXF files. CSV and
// Excel import share a row parser with automatic delimiter detection and
// case-insensitive header mapping.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/panelwright/nestcut/internal/model"
)

// ImportResult holds the results of an import operation. Row-level problems
// land in Errors/Warnings instead of aborting the whole file.
type ImportResult struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Length   int
	Width    int
	Quantity int
	Grain    int
	Band     int
	Laminate int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "part name", "description", "desc", "piece", "item"},
	"length":   {"length", "len", "l", "x"},
	"width":    {"width", "w", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"grain":    {"grain", "grain direction", "direction", "grain dir"},
	"band":     {"band", "banding", "edges", "edge banding", "edging"},
	"laminate": {"laminate", "laminated", "lam", "double"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter. It tries
// comma, semicolon, tab, and pipe; the delimiter producing the most
// consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against known aliases. Returns the mapping and true if
// a header was detected, or a positional mapping and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label: -1, Length: -1, Width: -1, Quantity: -1,
		Grain: -1, Band: -1, Laminate: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "grain":
					if mapping.Grain == -1 {
						mapping.Grain = i
					}
				case "band":
					if mapping.Band == -1 {
						mapping.Band = i
					}
				case "laminate":
					if mapping.Laminate == -1 {
						mapping.Laminate = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: Label, Length, Width, Quantity, Grain, Band, Laminate
		return ColumnMapping{
			Label: 0, Length: 1, Width: 2, Quantity: 3,
			Grain: 4, Band: 5, Laminate: 6,
		}, false
	}

	return mapping, true
}

// ParseGrain converts a grain direction string to a model.Grain value. The
// second return reports whether the string was recognized.
func ParseGrain(s string) (model.Grain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "length", "along length", "alonglength", "horizontal":
		return model.GrainAlongLength, true
	case "width", "along width", "alongwidth", "vertical":
		return model.GrainAlongWidth, true
	case "", "any", "none", "-":
		return model.GrainAny, true
	default:
		return model.GrainAny, false
	}
}

// ParseBand converts an edge list like "T+B", "trbl", or "all" to band
// flags. Unknown letters report failure.
func ParseBand(s string) (model.BandEdges, bool) {
	var b model.BandEdges
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "", "-", "none":
		return b, true
	case "all", "trbl":
		return model.BandEdges{Top: true, Right: true, Bottom: true, Left: true}, true
	}
	for _, c := range strings.ReplaceAll(normalized, "+", "") {
		switch c {
		case 't':
			b.Top = true
		case 'r':
			b.Right = true
		case 'b':
			b.Bottom = true
		case 'l':
			b.Left = true
		default:
			return model.BandEdges{}, false
		}
	}
	return b, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, true
	case "", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Part from a row using the given column mapping.
// Returns the part, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (model.Part, string, []string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Part %d", partCount+1)
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing length value", rowLabel), nil
	}
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), nil
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
	}

	if length <= 0 || width <= 0 || qty <= 0 {
		return model.Part{}, fmt.Sprintf("%s: Length, width, and quantity must be positive", rowLabel), nil
	}

	part := model.NewPart(label, length, width, qty)

	var warnings []string
	if grainStr := getCell(row, mapping.Grain); grainStr != "" {
		grain, ok := ParseGrain(grainStr)
		if ok {
			part.Grain = grain
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown grain direction '%s', defaulting to Any", rowLabel, grainStr))
		}
	}
	if bandStr := getCell(row, mapping.Band); bandStr != "" {
		band, ok := ParseBand(bandStr)
		if ok {
			part.Band = band
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown band edges '%s', ignoring", rowLabel, bandStr))
		}
	}
	if lamStr := getCell(row, mapping.Laminate); lamStr != "" {
		lam, ok := parseBool(lamStr)
		if ok {
			part.Laminate = lam
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown laminate flag '%s', ignoring", rowLabel, lamStr))
		}
	}

	return part, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports parts from a CSV file. The delimiter is detected
// automatically and columns are mapped by header names when present.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports parts from a CSV reader with a known
// delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports parts from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the first data column is not numeric,
		// treat the row as an unknown header and keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		part, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Parts))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Parts = append(result.Parts, part)
	}

	return result
}
