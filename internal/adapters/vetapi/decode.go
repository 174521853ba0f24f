package vetapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// decodeOne acepta la entidad directa o envuelta en {"data": {...}}.
func decodeOne(raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	if inner, ok := dataField(raw); ok && len(inner) > 0 && inner[0] == '{' {
		raw = inner
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("vetapi: decode response: %w", err)
	}
	return nil
}

// decodeList acepta [...] o {"data": [...]}.
func decodeList[T any](raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if inner, ok := dataField(raw); ok {
		raw = inner
	}
	out := make([]T, 0)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("vetapi: expected list, got %.32q", raw)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("vetapi: decode list: %w", err)
	}
	return out, nil
}

func dataField(raw []byte) (json.RawMessage, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	d, ok := env["data"]
	if !ok {
		return nil, false
	}
	return bytes.TrimSpace(d), true
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseInstant lee timestamps del backend; sin zona se asumen UTC.
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("vetapi: unrecognized timestamp %q", s)
}
