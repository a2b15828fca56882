package cache

import (
	"encoding/json"
	"fmt"
)

// Key builds the cache key for a catalog request.
// encoding/json writes map keys in sorted order, so two parameter maps with the
// same contents always produce the same key regardless of how they were built.
func Key(endpoint string, params map[string]any) string {
	if params == nil {
		params = map[string]any{}
	}

	b, err := json.Marshal(params)
	if err != nil {
		// Only unsupported value types end up here; fall back to fmt which also sorts map keys.
		return fmt.Sprintf("%s_%v", endpoint, params)
	}

	return endpoint + "_" + string(b)
}
