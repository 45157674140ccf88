package display

import (
	"encoding/json"
)

// MarshalJSON marshals v with pretty formatting for terminal output.
// Machine consumers that need compact framing (the pipeline progress
// stream) encode their own events instead of going through display.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
