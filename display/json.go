package display

import (
	"encoding/json"
	"os"
)

// CompactEnv switches JSON output to a single line, for piping into tools
// that read one document per line.
const CompactEnv = "VKGEN_JSON_COMPACT"

// MarshalJSON marshals v indented for people, or compact when CompactEnv
// is set to a non-empty value.
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv(CompactEnv) != "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
