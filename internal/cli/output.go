package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"someday/internal/errors"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// resolveFormat picks the requested format, or fallback when none was given,
// and rejects anything outside allowed
func resolveFormat(requested, fallback string, allowed ...string) (string, error) {
	format := requested
	if format == "" {
		format = fallback
	}
	for _, a := range allowed {
		if format == a {
			return format, nil
		}
	}
	return "", errors.NewInvalidInputError("format", format, fmt.Sprintf("unsupported format %q", format))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured encodes v as json or yaml
func writeStructured(w io.Writer, format string, v interface{}) error {
	if format == formatYAML {
		return writeYAML(w, v)
	}
	return writeJSON(w, v)
}
