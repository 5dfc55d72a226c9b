package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/echart/pkg/cache"
	chartio "github.com/matzehuels/echart/pkg/io"
	"github.com/matzehuels/echart/pkg/render/layout"
)

// GenerateLayout builds the chart described by f and computes its layout.
// f must already carry the merged options (see [Options.Merge]).
func GenerateLayout(f *chartio.File) (layout.Layout, error) {
	c, err := f.Build()
	if err != nil {
		return layout.Layout{}, fmt.Errorf("build chart: %w", err)
	}
	kind, opts, err := f.LayoutOptions()
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Build(c, kind, opts...)
}

// HashFile returns the content hash of a chart file. TOML and JSON files
// with the same content hash alike.
func HashFile(f *chartio.File) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("hash chart: %w", err)
	}
	return cache.Hash(data), nil
}

// MarshalLayout encodes l as its JSON document.
func MarshalLayout(l layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := layout.WriteJSON(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLayout decodes a JSON layout document.
func UnmarshalLayout(data []byte) (layout.Layout, error) {
	return layout.ReadJSON(bytes.NewReader(data))
}
