// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/file.go
// Summary: Grid content from CSV, TSV and JSON files. The format comes
// from the file name when linguist knows it, else from the content.

package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texelgrid/value"
)

// ErrUnknownFormat is returned for content that is neither delimited text
// nor JSON.
var ErrUnknownFormat = errors.New("source: unknown format")

// Format is a supported file format.
type Format int

const (
	FormatCSV Format = iota
	FormatTSV
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatJSON:
		return "json"
	}
	return "unknown"
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, true
	case "tsv":
		return FormatTSV, true
	case "json":
		return FormatJSON, true
	}
	return FormatCSV, false
}

// DetectFormat picks the format of data named name.
func DetectFormat(name string, data []byte) (Format, error) {
	for _, lang := range enry.GetLanguagesByExtension(name, data, nil) {
		switch lang {
		case "CSV":
			return FormatCSV, nil
		case "TSV":
			return FormatTSV, nil
		case "JSON":
			return FormatJSON, nil
		}
	}
	if enry.IsBinary(data) {
		return 0, fmt.Errorf("%w: %s is binary", ErrUnknownFormat, name)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0, fmt.Errorf("%w: %s is empty", ErrUnknownFormat, name)
	}
	if trimmed[0] == '[' {
		return FormatJSON, nil
	}
	firstLine, _, _ := bytes.Cut(trimmed, []byte("\n"))
	if bytes.Count(firstLine, []byte("\t")) > bytes.Count(firstLine, []byte(",")) {
		return FormatTSV, nil
	}
	return FormatCSV, nil
}

// LoadFile reads path and parses it in its detected format.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := DetectFormat(path, data)
	if err != nil {
		return nil, err
	}
	return Parse(f, data)
}

// Parse decodes data in format f. Delimited files use the first record
// as titles; JSON must be an array of arrays (first array holds the
// titles) or an array of objects (keys of the first object are the titles).
func Parse(f Format, data []byte) (*Static, error) {
	switch f {
	case FormatCSV:
		return parseDelimited(data, ',')
	case FormatTSV:
		return parseDelimited(data, '\t')
	case FormatJSON:
		return parseJSON(data)
	}
	return nil, ErrUnknownFormat
}

func parseDelimited(data []byte, comma rune) (*Static, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	titles, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Static{}, nil
		}
		return nil, fmt.Errorf("source: read titles: %w", err)
	}
	s := &Static{Titles: titles}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: read row %d: %w", len(s.Data)+1, err)
		}
		s.Data = append(s.Data, value.ParseAll(rec))
	}
	return s, nil
}

func parseJSON(data []byte) (*Static, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	if len(items) == 0 {
		return &Static{}, nil
	}

	first := bytes.TrimSpace(items[0])
	if len(first) > 0 && first[0] == '{' {
		return parseJSONObjects(items)
	}
	return parseJSONArrays(items)
}

func parseJSONArrays(items []json.RawMessage) (*Static, error) {
	var titles []any
	if err := decodeNumbers(items[0], &titles); err != nil {
		return nil, fmt.Errorf("source: titles: %w", err)
	}
	s := &Static{Titles: make([]string, len(titles))}
	for i, t := range titles {
		s.Titles[i] = fromJSON(t).Display()
	}
	for i, item := range items[1:] {
		var cells []any
		if err := decodeNumbers(item, &cells); err != nil {
			return nil, fmt.Errorf("source: row %d: %w", i, err)
		}
		row := make([]value.Value, len(cells))
		for j, c := range cells {
			row[j] = fromJSON(c)
		}
		s.Data = append(s.Data, row)
	}
	return s, nil
}

func parseJSONObjects(items []json.RawMessage) (*Static, error) {
	titles, err := objectKeys(items[0])
	if err != nil {
		return nil, fmt.Errorf("source: titles: %w", err)
	}
	s := &Static{Titles: titles}
	for i, item := range items {
		var obj map[string]any
		if err := decodeNumbers(item, &obj); err != nil {
			return nil, fmt.Errorf("source: row %d: %w", i, err)
		}
		row := make([]value.Value, len(titles))
		for j, key := range titles {
			row[j] = fromJSON(obj[key])
		}
		s.Data = append(s.Data, row)
	}
	return s, nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func decodeNumbers(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

func fromJSON(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.String("")
	case json.Number:
		return value.Parse(x.String())
	case string:
		return value.Parse(x)
	case bool:
		if x {
			return value.String("true")
		}
		return value.String("false")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return value.String(fmt.Sprint(v))
	}
	return value.String(string(data))
}
