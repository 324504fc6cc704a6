// Package util provides utility functions for phone/email/name normalization
// and extracting metadata from the environment.
//
//revive:disable-next-line:var-naming
package util

import (
	"os"
	"strings"
)

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// IsEmpty checks if a string is empty or contains only whitespace
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsNotEmpty checks if a string is not empty
func IsNotEmpty(s string) bool {
	return !IsEmpty(s)
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// Contains checks if a string slice contains an item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// AppendUnique appends item to slice unless it is already present
func AppendUnique(slice []string, item string) []string {
	if item == "" || Contains(slice, item) {
		return slice
	}
	return append(slice, item)
}

// CollapseWhitespace trims a string and folds runs of whitespace into single spaces
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
