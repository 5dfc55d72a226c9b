package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/echart/pkg/errors"
)

// WriteTOML encodes f as TOML and writes it to w.
// The output can be re-imported with [ReadTOML].
func WriteTOML(f *File, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON encodes f as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(f *File, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes f to path, choosing TOML or JSON by extension.
func ExportFile(f *File, path string) error {
	if err := errors.ValidateChartPath(path); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return WriteJSON(f, out)
	}
	return WriteTOML(f, out)
}

// Example returns a small line chart file, used by "echart init".
func Example() *File {
	five, three := 5, 3
	return &File{
		Title:   "Sales",
		Kind:    "line",
		Area:    true,
		Grid:    Grid{X: &five, Y: &five},
		SubGrid: Grid{X: &three, Y: &three},
		Abscissa: Series{
			Title:  "Year",
			Values: []float64{2004, 2005, 2006, 2007},
		},
		Series: []Series{
			{Title: "Sales", Values: []float64{1000, 1170, 660, 1030}},
			{Title: "Expenses", Values: []float64{400, 460, 1120, 540}},
		},
	}
}
