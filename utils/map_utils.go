package utils

import (
	"strconv"
	"strings"
)

// Helper functions for reading validated request bodies (map[string]interface{} from encoding/json)

// Has reports whether key is present, even when its value is null
func Has(data map[string]interface{}, key string) bool {
	_, ok := data[key]
	return ok
}

func GetString(data map[string]interface{}, key string) string {
	if val, ok := data[key].(string); ok {
		return val
	}
	return ""
}

// GetNullableString returns nil for a missing, null or blank value
func GetNullableString(data map[string]interface{}, key string) *string {
	val, ok := data[key].(string)
	if !ok || strings.TrimSpace(val) == "" {
		return nil
	}
	return &val
}

// GetScalarString returns strings as they are and numbers in their shortest form (10, not 10.0)
func GetScalarString(data map[string]interface{}, key string) string {
	switch val := data[key].(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	}
	return ""
}

func GetInt(data map[string]interface{}, key string) int {
	switch val := data[key].(type) {
	case int:
		return val
	case int32:
		return int(val)
	case int64:
		return int(val)
	case float32:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(val))
		return n
	}
	return 0
}

// GetBool accepts true/false, 1/0 and their string forms
func GetBool(data map[string]interface{}, key string) bool {
	switch val := data[key].(type) {
	case bool:
		return val
	case float64:
		return val == 1
	case int:
		return val == 1
	case string:
		return val == "1" || strings.EqualFold(val, "true")
	}
	return false
}

// GetStringSlice converts a JSON array to strings, dropping non-string items
func GetStringSlice(data map[string]interface{}, key string) []string {
	switch val := data[key].(type) {
	case []string:
		return val
	case []interface{}:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return []string{}
}
