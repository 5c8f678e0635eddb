// Package config defines the exclusion configuration consumed by the
// traversal engine and loads it from a Java-style properties file.
package config

import "strings"

// DefaultMaxFileSize is the content inclusion limit applied when no
// configuration overrides it: one mebibyte.
const DefaultMaxFileSize int64 = 1024 * 1024

// Exclusions is the immutable per-run configuration for the traversal engine.
// Directory and file names are matched exactly against the stored sets; there
// is no globbing and no path-aware matching.
type Exclusions struct {
	MaxFileSize int64
	Directories map[string]struct{}
	Extensions  map[string]struct{}
	Files       map[string]struct{}
}

// NewExclusions builds an Exclusions value from the provided limit and name
// lists. Values are trimmed and empty entries are dropped.
func NewExclusions(maxFileSize int64, directoryNames []string, extensionNames []string, fileNames []string) Exclusions {
	return Exclusions{
		MaxFileSize: maxFileSize,
		Directories: buildNameSet(directoryNames),
		Extensions:  buildNameSet(extensionNames),
		Files:       buildNameSet(fileNames),
	}
}

// DefaultExclusions returns the configuration used when no properties file is
// available: the default size limit and empty exclusion sets.
func DefaultExclusions() Exclusions {
	return NewExclusions(DefaultMaxFileSize, nil, nil, nil)
}

// ExcludesDirectory reports whether a directory with the given final path
// segment is excluded from traversal.
func (exclusions Exclusions) ExcludesDirectory(directoryName string) bool {
	_, excluded := exclusions.Directories[directoryName]
	return excluded
}

// ExcludesFile reports whether a file with the given base name is excluded,
// either by exact name or by its dot-delimited extension. A name without an
// extension, or ending in a trailing dot, is never excluded by extension.
func (exclusions Exclusions) ExcludesFile(fileName string) bool {
	if _, excluded := exclusions.Files[fileName]; excluded {
		return true
	}
	dotIndex := strings.LastIndex(fileName, ".")
	if dotIndex == -1 || dotIndex == len(fileName)-1 {
		return false
	}
	_, excluded := exclusions.Extensions[fileName[dotIndex+1:]]
	return excluded
}

func buildNameSet(names []string) map[string]struct{} {
	nameSet := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmedName := strings.TrimSpace(name)
		if trimmedName == "" {
			continue
		}
		nameSet[trimmedName] = struct{}{}
	}
	return nameSet
}
