package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dirpack/dirpack/internal/config"
)

func writePropertiesFile(t *testing.T, content string) string {
	t.Helper()
	propertiesPath := filepath.Join(t.TempDir(), "dirpack.properties")
	if writeError := os.WriteFile(propertiesPath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("writing properties file: %v", writeError)
	}
	return propertiesPath
}

func TestLoadProperties(t *testing.T) {
	propertiesPath := writePropertiesFile(t,
		"max.file.size=2048\n"+
			"excluded.dirs=node_modules, .git ,\n"+
			"excluded.extensions=class,jar\n"+
			"excluded.files=secrets.txt\n")

	exclusions, diagnostics := config.LoadProperties(propertiesPath)
	if len(diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diagnostics)
	}
	if exclusions.MaxFileSize != 2048 {
		t.Fatalf("expected max file size 2048, got %d", exclusions.MaxFileSize)
	}
	if !exclusions.ExcludesDirectory("node_modules") || !exclusions.ExcludesDirectory(".git") {
		t.Fatalf("expected configured directories to be excluded")
	}
	if !exclusions.ExcludesFile("App.class") || !exclusions.ExcludesFile("lib.jar") {
		t.Fatalf("expected configured extensions to be excluded")
	}
	if !exclusions.ExcludesFile("secrets.txt") {
		t.Fatalf("expected configured file name to be excluded")
	}
}

func TestLoadPropertiesMissingFileFallsBackToDefaults(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "absent.properties")

	exclusions, diagnostics := config.LoadProperties(missingPath)
	if exclusions.MaxFileSize != config.DefaultMaxFileSize {
		t.Fatalf("expected default max file size, got %d", exclusions.MaxFileSize)
	}
	if len(exclusions.Directories) != 0 || len(exclusions.Extensions) != 0 || len(exclusions.Files) != 0 {
		t.Fatalf("expected empty exclusion sets, got %+v", exclusions)
	}
	if len(diagnostics) != 1 || !strings.Contains(diagnostics[0], "not found") {
		t.Fatalf("expected a not-found diagnostic, got %v", diagnostics)
	}
}

func TestLoadPropertiesMalformedSizeFallsBackToDefault(t *testing.T) {
	propertiesPath := writePropertiesFile(t,
		"max.file.size=lots\n"+
			"excluded.dirs=target\n")

	exclusions, diagnostics := config.LoadProperties(propertiesPath)
	if exclusions.MaxFileSize != config.DefaultMaxFileSize {
		t.Fatalf("expected default max file size, got %d", exclusions.MaxFileSize)
	}
	if !exclusions.ExcludesDirectory("target") {
		t.Fatalf("expected remaining properties to still apply")
	}
	if len(diagnostics) != 1 || !strings.Contains(diagnostics[0], "malformed") {
		t.Fatalf("expected a malformed-size diagnostic, got %v", diagnostics)
	}
}
