package swissdamed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrMissingValues = errors.New("JSON must contain a 'values' array or be a top-level array")

// LoadFile reads a saved API response: {"values": [...]} or a bare array.
func LoadFile(path string) ([]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(b))
}

// Decode parses one JSON document keeping numbers as json.Number so
// integers are rendered without a fraction.
func Decode(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	switch x := doc.(type) {
	case map[string]any:
		if arr, ok := x["values"].([]any); ok {
			return arr, nil
		}
	case []any:
		return x, nil
	}
	return nil, ErrMissingValues
}
