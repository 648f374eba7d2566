package utils

import "strconv"

// ConvertToInt parses s as a base-10 int, returning 0 for invalid input.
// Query parameters use it so that malformed values fall back to defaults
// instead of failing the request.
func ConvertToInt(s string) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return value
}

// ConvertToInt64 parses s as a base-10 int64, returning 0 for invalid input.
func ConvertToInt64(s string) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return value
}
