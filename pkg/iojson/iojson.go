// Package iojson writes command output as JSON. Translations routinely carry
// markup such as <b> and &nbsp;, so HTML escaping is always disabled.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

func encoder(w io.Writer, indent bool) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc
}

// WriteWith writes obj to w as indented JSON. When obj cannot be encoded a
// single-line error object is written to ew instead and the encoding error is
// returned.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	if err := encoder(w, true).Encode(obj); err != nil {
		_ = encoder(ew, false).Encode(map[string]string{
			"message": "unable to encode output",
			"error":   err.Error(),
		})
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteLine writes obj to w as a single line of JSON, for streaming output
// that can be consumed with tools like jq.
func WriteLine(w io.Writer, obj any) error {
	return encoder(w, false).Encode(obj)
}
