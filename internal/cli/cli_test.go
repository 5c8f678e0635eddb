package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// TestRunPackWritesArtifact drives the root command end to end against a
// temporary tree and verifies the persisted artifact.
func TestRunPackWritesArtifact(t *testing.T) {
	rootDirectory := t.TempDir()
	if writeError := os.WriteFile(filepath.Join(rootDirectory, "note.txt"), []byte("remember"), 0o644); writeError != nil {
		t.Fatalf("writing test file: %v", writeError)
	}
	outputPath := filepath.Join(t.TempDir(), "packed.txt")

	rootCommand := createRootCommand(zap.NewNop())
	rootCommand.SetArgs([]string{rootDirectory, "-o", outputPath, "-f"})
	rootCommand.SetOut(&bytes.Buffer{})
	rootCommand.SetErr(&bytes.Buffer{})
	if executeError := rootCommand.Execute(); executeError != nil {
		t.Fatalf("Execute error: %v", executeError)
	}

	artifactBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading artifact: %v", readError)
	}
	artifact := string(artifactBytes)
	if !strings.Contains(artifact, "File: note.txt") || !strings.Contains(artifact, "Content:\nremember\n") {
		t.Fatalf("artifact missing packed file:\n%s", artifact)
	}
	if !strings.Contains(artifact, "DIRPACK OUTPUT FILE") {
		t.Fatalf("artifact missing header:\n%s", artifact)
	}
}

// TestRunPackDefaultOutputPath verifies the <root>_contents.txt default
// inside the first root.
func TestRunPackDefaultOutputPath(t *testing.T) {
	rootDirectory := t.TempDir()
	if writeError := os.WriteFile(filepath.Join(rootDirectory, "main.go"), []byte("package main\n"), 0o644); writeError != nil {
		t.Fatalf("writing test file: %v", writeError)
	}

	rootCommand := createRootCommand(zap.NewNop())
	rootCommand.SetArgs([]string{rootDirectory, "-f"})
	rootCommand.SetOut(&bytes.Buffer{})
	rootCommand.SetErr(&bytes.Buffer{})
	if executeError := rootCommand.Execute(); executeError != nil {
		t.Fatalf("Execute error: %v", executeError)
	}

	expectedPath := filepath.Join(rootDirectory, filepath.Base(rootDirectory)+"_contents.txt")
	if _, statError := os.Stat(expectedPath); statError != nil {
		t.Fatalf("expected default artifact at %s: %v", expectedPath, statError)
	}
}

// TestRunPackDeclinedOverwriteLeavesFile verifies that declining the
// confirmation keeps the existing file and does not fail the run.
func TestRunPackDeclinedOverwriteLeavesFile(t *testing.T) {
	rootDirectory := t.TempDir()
	if writeError := os.WriteFile(filepath.Join(rootDirectory, "data.txt"), []byte("data"), 0o644); writeError != nil {
		t.Fatalf("writing test file: %v", writeError)
	}
	outputPath := filepath.Join(t.TempDir(), "existing.txt")
	if writeError := os.WriteFile(outputPath, []byte("sentinel"), 0o644); writeError != nil {
		t.Fatalf("writing existing artifact: %v", writeError)
	}

	rootCommand := createRootCommand(zap.NewNop())
	rootCommand.SetArgs([]string{rootDirectory, "-o", outputPath})
	rootCommand.SetIn(strings.NewReader("n\n"))
	rootCommand.SetOut(&bytes.Buffer{})
	rootCommand.SetErr(&bytes.Buffer{})
	if executeError := rootCommand.Execute(); executeError != nil {
		t.Fatalf("Execute error: %v", executeError)
	}

	survivingBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading artifact: %v", readError)
	}
	if string(survivingBytes) != "sentinel" {
		t.Fatalf("declined overwrite replaced the file: %q", survivingBytes)
	}
}

func TestConfirmOverwrite(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "short yes", input: "y\n", expected: true},
		{name: "long yes", input: "yes\n", expected: true},
		{name: "uppercase yes", input: "Y\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "empty line", input: "\n", expected: false},
		{name: "closed input", input: "", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rootCommand := createRootCommand(zap.NewNop())
			rootCommand.SetIn(strings.NewReader(testCase.input))
			rootCommand.SetOut(&bytes.Buffer{})
			result := confirmOverwrite(rootCommand, "out.txt")
			if result != testCase.expected {
				t.Fatalf("expected %v, got %v", testCase.expected, result)
			}
		})
	}
}

// TestResolveExclusionsFlagOverlay verifies that flag values extend the
// properties sets and that the size flag overrides only when set.
func TestResolveExclusionsFlagOverlay(t *testing.T) {
	workingDirectory := t.TempDir()
	propertiesPath := filepath.Join(workingDirectory, "custom.properties")
	propertiesContent := "max.file.size=4096\nexcluded.dirs=target\n"
	if writeError := os.WriteFile(propertiesPath, []byte(propertiesContent), 0o644); writeError != nil {
		t.Fatalf("writing properties: %v", writeError)
	}

	rootCommand := createRootCommand(zap.NewNop())
	if parseError := rootCommand.ParseFlags([]string{
		"--config", propertiesPath,
		"--exclude-dir", "build",
		"--exclude-ext", "class",
	}); parseError != nil {
		t.Fatalf("parsing flags: %v", parseError)
	}
	options := packOptions{
		configPath:         propertiesPath,
		excludedDirs:       []string{"build"},
		excludedExtensions: []string{"class"},
	}

	exclusions := resolveExclusions(rootCommand, zap.NewNop(), options)
	if exclusions.MaxFileSize != 4096 {
		t.Fatalf("expected properties size to win when the flag is unset, got %d", exclusions.MaxFileSize)
	}
	if !exclusions.ExcludesDirectory("target") || !exclusions.ExcludesDirectory("build") {
		t.Fatalf("expected both properties and flag directories to be excluded")
	}
	if !exclusions.ExcludesFile("A.class") {
		t.Fatalf("expected flag extension to be excluded")
	}
}
