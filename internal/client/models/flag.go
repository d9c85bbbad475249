package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IsDisabledFlag reports whether an is_active/active value marks an account
// as disabled. The backend is inconsistent about the type it sends, so the
// literals 0, false, "0" and "false" all count as disabled. Anything else,
// including an absent value, does not.
func IsDisabledFlag(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return !x
	case string:
		return x == "0" || x == "false"
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case float64:
		return x == 0
	case float32:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case int32:
		return x == 0
	default:
		return false
	}
}

// decodeFlag turns a raw JSON value into the Go value IsDisabledFlag expects.
func decodeFlag(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	d := json.NewDecoder(strings.NewReader(string(raw)))
	d.UseNumber()
	var v any
	if err := d.Decode(&v); err != nil {
		return nil
	}
	return v
}

// flexInt accepts a JSON number or a numeric string. null and "" give 0.
func flexInt(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", raw)
	}
	return int64(f), nil
}

// flexString accepts a JSON string or any scalar and returns its text.
func flexString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var out string
	if err := json.Unmarshal(raw, &out); err == nil {
		return out
	}
	return s
}
