package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format selects the encoding for CLI output.
type Format string

const (
	JSON Format = "json"
	EDN  Format = "edn"
)

// Parse validates a --format flag value. Empty means JSON.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "edn":
		return EDN, nil
	default:
		return "", fmt.Errorf("unknown format: %s (want json or edn)", s)
	}
}

// Write writes v to w in the requested format.
func Write(w io.Writer, v any, f Format, pretty bool) error {
	switch f {
	case "", JSON:
		return WriteJSON(w, v, pretty)
	case EDN:
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", f)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: We intentionally keep output strict JSON only. If you need to
// communicate how to fetch more data, use a `meta` object or `_hint` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
