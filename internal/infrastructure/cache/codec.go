package cache

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("cache encode: %w", err)
	}
	return string(b), nil
}

func decode(payload string, v any) error {
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("cache decode: %w", err)
	}
	return nil
}

// keyPart hashes a free-form query value into a fixed token so list
// keys stay free of separators and unbounded user input.
func keyPart(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}
