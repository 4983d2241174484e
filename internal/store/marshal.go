package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalArgs converts step arguments to JSON TEXT. A nil map is stored as
// NULL so that events without arguments read back unchanged.
func marshalArgs(args map[string]any) (sql.NullString, error) {
	if args == nil {
		return sql.NullString{}, nil
	}
	s, err := marshalJSON(args)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal args: %w", err)
	}
	return sql.NullString{String: s, Valid: true}, nil
}

// marshalErrors converts mismatch messages to JSON TEXT.
func marshalErrors(errs []string) (string, error) {
	if len(errs) == 0 {
		return "[]", nil
	}
	s, err := marshalJSON(errs)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return s, nil
}

// marshalJSON encodes v with sorted map keys and HTML escaping disabled.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalArgs parses JSON TEXT back to step arguments. Integers come back
// as int64, the type the scenario loader produces.
func unmarshalArgs(data sql.NullString) (map[string]any, error) {
	if !data.Valid {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(data.String))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	for k, v := range raw {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("unmarshal args: %q is not an integer: %s", k, n)
		}
		raw[k] = i
	}
	return raw, nil
}

// unmarshalErrors parses JSON TEXT to mismatch messages. An empty list
// reads back as nil.
func unmarshalErrors(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var errs []string
	if err := json.Unmarshal([]byte(data), &errs); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	return errs, nil
}
