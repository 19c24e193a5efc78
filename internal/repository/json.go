package repository

import (
	"encoding/json"
	"fmt"
)

// AppendJSON appends item to the JSON array in existing. Empty existing is
// treated as an empty array.
func AppendJSON(existing, item []byte) ([]byte, error) {
	var list []json.RawMessage
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &list); err != nil {
			return nil, fmt.Errorf("stored value is not a JSON array: %w", err)
		}
	}
	if !json.Valid(item) {
		return nil, fmt.Errorf("item is not valid JSON")
	}
	list = append(list, json.RawMessage(item))
	return json.Marshal(list)
}
