package store

import (
	"fmt"
	"sort"

	"github.com/tinylib/msgp/msgp"
)

// encode serializes entries as a msgpack map. Keys are written in sorted
// order so identical stores produce identical files.
func encode(entries map[string]string) []byte {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := msgp.AppendMapHeader(nil, uint32(len(keys)))
	for _, k := range keys {
		b = msgp.AppendString(b, k)
		b = msgp.AppendString(b, entries[k])
	}
	return b
}

// decode parses a msgpack map of strings. An empty input is an empty store.
func decode(data []byte) (map[string]string, error) {
	entries := make(map[string]string)
	if len(data) == 0 {
		return entries, nil
	}

	size, rest, err := msgp.ReadMapHeaderBytes(data)
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < size; i++ {
		var key, value string
		key, rest, err = msgp.ReadStringBytes(rest)
		if err != nil {
			return nil, fmt.Errorf("entry %d key: %w", i, err)
		}
		value, rest, err = msgp.ReadStringBytes(rest)
		if err != nil {
			return nil, fmt.Errorf("entry %d value: %w", i, err)
		}
		entries[key] = value
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("%d trailing bytes after store map", len(rest))
	}
	return entries, nil
}
