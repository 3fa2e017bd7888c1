package strategy

import "fmt"

// Defensive accessors for raw module payloads. Framework modules are
// developed independently and their payloads arrive as decoded JSON; missing
// or mistyped fields degrade to empty values, never to errors.

// StringField extracts a string field from a payload map
func StringField(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

// MapField extracts a nested object field from a payload map
func MapField(payload map[string]any, key string) map[string]any {
	if payload == nil {
		return nil
	}
	if m, ok := payload[key].(map[string]any); ok {
		return m
	}
	return nil
}

// StringSlice extracts a list of strings from a payload field. Elements that
// are not strings are skipped.
func StringSlice(payload map[string]any, key string) []string {
	out := []string{}
	if payload == nil {
		return out
	}
	switch t := payload[key].(type) {
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, t...)
	}
	return out
}

// FactorStrings extracts a list of factor descriptions, accepting either
// plain strings or objects shaped like {"factor": "..."}.
func FactorStrings(payload map[string]any, key string) []string {
	out := []string{}
	if payload == nil {
		return out
	}
	items, ok := payload[key].([]any)
	if !ok {
		if ss, ok := payload[key].([]string); ok {
			return append(out, ss...)
		}
		return out
	}
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if f, ok := t["factor"].(string); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// NamedStrings extracts a list of names, accepting either plain strings or
// objects carrying a "name" field (e.g. segment descriptors).
func NamedStrings(payload map[string]any, key string) []string {
	out := []string{}
	if payload == nil {
		return out
	}
	items, ok := payload[key].([]any)
	if !ok {
		if ss, ok := payload[key].([]string); ok {
			return append(out, ss...)
		}
		return out
	}
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if n, ok := t["name"].(string); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// Top returns at most n leading elements of a string slice
func Top(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// Stringify renders an arbitrary payload value as display text
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
