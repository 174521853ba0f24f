package vetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pet-care-dashboard/internal/ports/backend"
)

var errUnknownSlotShape = errors.New("vetapi: unrecognized slots payload")

// AvailableSlots prueba las plantillas configuradas en orden hasta que una responda con
// una forma reconocible. Nunca devuelve error: si todas fallan la lista queda vacía.
// Ante AuthError deja de probar; el 401 ya limpió la sesión y la próxima llamada
// autenticada manda al usuario a login.
func (c *Client) AvailableSlots(ctx context.Context, vetID int64, date string) ([]string, error) {
	for _, tpl := range c.slots {
		path := slotPath(tpl, vetID, date)

		raw, err := c.send(ctx, http.MethodGet, path, nil, true)
		if err != nil {
			if backend.Classify(err) == backend.KindAuth {
				c.log.Warn("slot lookup unauthenticated", map[string]any{"vet_id": vetID, "err": err})
				return []string{}, nil
			}
			c.log.Debug("slot endpoint failed", map[string]any{"path": path, "err": err})
			continue
		}

		slots, err := parseSlots(raw)
		if err != nil {
			c.log.Debug("slot endpoint payload rejected", map[string]any{"path": path, "err": err})
			continue
		}
		return slots, nil
	}

	c.log.Warn("no slot endpoint answered", map[string]any{"vet_id": vetID, "date": date})
	return []string{}, nil
}

func slotPath(tpl string, vetID int64, date string) string {
	p := strings.ReplaceAll(tpl, "{vet}", strconv.FormatInt(vetID, 10))
	sep := "?"
	if strings.Contains(p, "?") {
		sep = "&"
	}
	return p + sep + "date=" + url.QueryEscape(date)
}

// parseSlots acepta [...], {"slots": [...]} o {"data": [...]}; cada ítem puede ser un
// string o un objeto con start_time, start o time.
func parseSlots(raw []byte) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errUnknownSlotShape
	}

	var items []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		list, ok := env["slots"]
		if !ok {
			list, ok = env["data"]
		}
		if !ok {
			return nil, errUnknownSlotShape
		}
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", errUnknownSlotShape, err)
		}
	default:
		return nil, errUnknownSlotShape
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := slotValue(it); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func slotValue(it json.RawMessage) (string, bool) {
	var s string
	if json.Unmarshal(it, &s) == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var obj struct {
		StartTime string `json:"start_time"`
		Start     string `json:"start"`
		Time      string `json:"time"`
	}
	if json.Unmarshal(it, &obj) != nil {
		return "", false
	}
	for _, v := range []string{obj.StartTime, obj.Start, obj.Time} {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}
