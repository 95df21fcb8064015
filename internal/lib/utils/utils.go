// Package utils contains small helpers that don't belong to a specific
// domain.
package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON writes v as indented JSON to w, preceded by a "label:" line.
func PrintJSON(w io.Writer, label string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", label, err)
	}

	_, err = fmt.Fprintf(w, "%s:\n%s\n", label, data)
	return err
}
