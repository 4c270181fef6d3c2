package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ClampPageSize normalises caller-supplied paging to [1, max].
func ClampPageSize(requested, max int) int {
	if max < 1 {
		max = 25
	}
	if requested < 1 || requested > max {
		return max
	}
	return requested
}
