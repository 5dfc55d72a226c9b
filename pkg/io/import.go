package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/echart/pkg/errors"
)

// ReadTOML decodes a chart file from r.
//
// Keys the file format does not know are rejected, so a typo such as
// "widht" fails loudly instead of silently keeping the default.
// ReadTOML does not close r.
func ReadTOML(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// ReadJSON decodes a chart file from r. Unknown fields are rejected.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*File, error) {
	var f File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return &f, nil
}

// Read decodes a chart file in the given format ("toml" or "json").
func Read(r io.Reader, format string) (*File, error) {
	switch strings.ToLower(format) {
	case "toml":
		return ReadTOML(r)
	case "json":
		return ReadJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart file format %q", format)
	}
}

// ImportFile reads the chart file at path. The format is chosen by extension:
// .toml or .json.
func ImportFile(path string) (*File, error) {
	if err := errors.ValidateChartPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	file, err := Read(f, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return file, nil
}
