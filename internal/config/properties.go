package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultPropertiesFileName is the properties file looked up in the
	// working directory when no explicit path is given.
	DefaultPropertiesFileName = "dirpack.properties"

	maxFileSizeKey        = "max.file.size"
	excludedDirsKey       = "excluded.dirs"
	excludedExtensionsKey = "excluded.extensions"
	excludedFilesKey      = "excluded.files"

	propertiesFormat = "properties"

	propertiesNotFoundFormat   = "properties file %s not found, using default values"
	propertiesUnreadableFormat = "unable to read properties file %s: %v, using default values"
	malformedSizeFormat        = "malformed %s value %q: %v, using default of %d bytes"
)

// LoadProperties reads the exclusion configuration from the properties file at
// propertiesPath. Configuration problems never fail the run: a missing or
// unreadable file yields the defaults, a malformed size value falls back to the
// default limit, and every such recovery is reported through the returned
// diagnostics slice.
func LoadProperties(propertiesPath string) (Exclusions, []string) {
	var diagnostics []string

	if _, statError := os.Stat(propertiesPath); statError != nil {
		diagnostics = append(diagnostics, fmt.Sprintf(propertiesNotFoundFormat, propertiesPath))
		return DefaultExclusions(), diagnostics
	}

	propertiesReader := viper.New()
	propertiesReader.SetConfigFile(propertiesPath)
	propertiesReader.SetConfigType(propertiesFormat)
	if readError := propertiesReader.ReadInConfig(); readError != nil {
		diagnostics = append(diagnostics, fmt.Sprintf(propertiesUnreadableFormat, propertiesPath, readError))
		return DefaultExclusions(), diagnostics
	}

	maxFileSize := DefaultMaxFileSize
	if rawSize := strings.TrimSpace(propertiesReader.GetString(maxFileSizeKey)); rawSize != "" {
		parsedSize, parseError := strconv.ParseInt(rawSize, 10, 64)
		if parseError != nil {
			diagnostics = append(diagnostics, fmt.Sprintf(malformedSizeFormat, maxFileSizeKey, rawSize, parseError, DefaultMaxFileSize))
		} else {
			maxFileSize = parsedSize
		}
	}

	exclusions := NewExclusions(
		maxFileSize,
		splitCommaSeparated(propertiesReader.GetString(excludedDirsKey)),
		splitCommaSeparated(propertiesReader.GetString(excludedExtensionsKey)),
		splitCommaSeparated(propertiesReader.GetString(excludedFilesKey)),
	)
	return exclusions, diagnostics
}

// splitCommaSeparated splits a comma-separated property value into its
// non-empty trimmed parts.
func splitCommaSeparated(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		trimmedPart := strings.TrimSpace(part)
		if trimmedPart != "" {
			parts = append(parts, trimmedPart)
		}
	}
	return parts
}
