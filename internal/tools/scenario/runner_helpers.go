package scenario

import (
	"fmt"
	"strings"
)

func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return ""
}

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func readFloat(args map[string]any, key string) (float64, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return fallback
}

func optionalInt(args map[string]any, key string, fallback int) int {
	value, ok := readInt(args, key)
	if !ok {
		return fallback
	}
	return value
}

func readBool(args map[string]any, key string) (bool, bool) {
	value, ok := args[key]
	if !ok {
		return false, false
	}
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		lower := strings.ToLower(strings.TrimSpace(typed))
		switch lower {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	}
	return false, false
}

// readFloatList reads a Lua sequence of numbers. A missing key is an empty
// list.
func readFloatList(args map[string]any, key string) ([]float64, error) {
	items, err := readList(args, key)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(items))
	for i, item := range items {
		switch typed := item.(type) {
		case int:
			values = append(values, float64(typed))
		case float64:
			values = append(values, typed)
		default:
			return nil, fmt.Errorf("%s[%d] must be a number", key, i+1)
		}
		if last := values[len(values)-1]; last < 0 || last >= 1 {
			return nil, fmt.Errorf("%s[%d] = %v, want [0, 1)", key, i+1, last)
		}
	}
	return values, nil
}

func readIntList(args map[string]any, key string) ([]int, error) {
	items, err := readList(args, key)
	if err != nil {
		return nil, err
	}
	values := make([]int, 0, len(items))
	for i, item := range items {
		typed, ok := item.(int)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be an integer", key, i+1)
		}
		values = append(values, typed)
	}
	return values, nil
}

func readList(args map[string]any, key string) ([]any, error) {
	value, ok := args[key]
	if !ok {
		return nil, nil
	}
	switch typed := value.(type) {
	case []any:
		return typed, nil
	case map[string]any:
		if len(typed) == 0 {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%s must be a list", key)
}
