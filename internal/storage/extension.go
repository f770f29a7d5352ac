package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ExtensionState carries free-form data on an asset that the rules never
// read, such as flavor text or artist credits.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(key string, v any) error {
	if *e == nil {
		*e = ExtensionState{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}

	(*e)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the value at key into out and reports whether it was
// present.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// String returns the value at key when it holds a JSON string.
func (e ExtensionState) String(key string) string {
	var s string
	if ok, err := e.Get(key, &s); !ok || err != nil {
		return ""
	}
	return s
}

func (e ExtensionState) Delete(key string) {
	delete(e, key)
}

// Keys returns the extension keys in sorted order.
func (e ExtensionState) Keys() []string {
	return slices.Sorted(maps.Keys(e))
}
