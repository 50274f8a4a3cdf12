// Package utils contains general helper functions used across the collect tool.
package utils

import "strings"

const (
	// ConfigFileName is the name of the configuration file read from the global and working directories.
	ConfigFileName = ".collect.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".collect"
)

// DeduplicateNames removes duplicate and blank names from a slice while preserving order.
// Names are kept exactly as given, including surrounding spaces. The first occurrence of
// each unique name is kept. A nil slice stays nil.
func DeduplicateNames(names []string) []string {
	if names == nil {
		return nil
	}
	encounteredNames := make(map[string]struct{})
	result := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, exists := encounteredNames[name]; !exists {
			encounteredNames[name] = struct{}{}
			result = append(result, name)
		}
	}
	return result
}

// NameSet builds a lookup set from a slice of names.
func NameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
