package output

import (
	"fmt"
	"io"
	"strings"
)

// Format is an output format name.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json and yaml (case-insensitive, yml allowed).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Formatter writes data to w.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format; unknown formats use a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return JSONFormatter{}
	case FormatYAML:
		return YAMLFormatter{}
	default:
		return TableFormatter{}
	}
}

// Print formats data to w in format.
func Print(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}
