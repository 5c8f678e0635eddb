// Package report assembles the packed text artifact for one run: a header,
// a one-time analysis-instructions block, and per-root structure and content
// sections derived from a single traversal per root.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dirpack/dirpack/internal/config"
	"github.com/dirpack/dirpack/internal/scan"
	"github.com/dirpack/dirpack/internal/utils"
)

const (
	fileSeparator = "================"

	permissionDeniedSuffix = ": Permission denied\n"

	contentSizeSkippedFormat  = "Content: Skipped (file size: %s, max allowed: %s)\n\n"
	contentBinarySkipped      = "Content: Skipped binary file\n\n"
	contentErrorSkippedFormat = "Content: Skipped due to error: %s\n\n"
	invalidEncodingMessage    = "invalid UTF-8 encoding"

	structureSectionFormat = "Directory Structure: %s\n"

	warnSkippedRootFormat = "skipping root %s: %v"
	errorNoUsableRoots    = "report: no usable root directories"
	errorRootNotDirectory = "not a directory"
)

// Options configures one report generation run.
type Options struct {
	// Roots are processed strictly in the given order and are not
	// deduplicated; a root listed twice is packed twice.
	Roots      []string
	Exclusions config.Exclusions
	// Warn receives diagnostics for recovered failures such as skipped
	// roots. A nil Warn discards them.
	Warn func(message string)
}

// Section is the packed structure-plus-content text for one processed root.
type Section struct {
	RootPath string
	RootName string
	Text     string
}

// Sections traverses every usable root exactly once, in the caller-supplied
// order, and returns one packed section per root. Roots that cannot be
// processed are skipped with a diagnostic; Sections fails only when no root
// could be processed at all.
func Sections(options Options) ([]Section, error) {
	warn := options.Warn
	if warn == nil {
		warn = func(string) {}
	}

	var sections []Section
	for _, rootPath := range options.Roots {
		cleanRoot, validationError := validateRoot(rootPath)
		if validationError != nil {
			warn(fmt.Sprintf(warnSkippedRootFormat, rootPath, validationError))
			continue
		}
		entries, walkError := scan.Collect(cleanRoot, options.Exclusions)
		if walkError != nil {
			warn(fmt.Sprintf(warnSkippedRootFormat, rootPath, walkError))
			continue
		}
		rootName := filepath.Base(cleanRoot)
		var builder strings.Builder
		fmt.Fprintf(&builder, structureSectionFormat, rootName)
		builder.WriteString(renderStructure(entries))
		builder.WriteString("\n\n")
		builder.WriteString(renderContents(entries, options.Exclusions))
		sections = append(sections, Section{RootPath: cleanRoot, RootName: rootName, Text: builder.String()})
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf(errorNoUsableRoots)
	}
	return sections, nil
}

// Assemble concatenates the per-root sections under a single header and the
// one-time instructions block, in section order.
func Assemble(sections []Section) string {
	var builder strings.Builder
	rootPaths := make([]string, 0, len(sections))
	for _, section := range sections {
		rootPaths = append(rootPaths, section.RootPath)
	}
	builder.WriteString(buildHeader(time.Now(), rootPaths))
	if len(sections) > 0 {
		builder.WriteString(buildInstructions(sections[0].RootName))
	}
	for _, section := range sections {
		builder.WriteString(section.Text)
	}
	return builder.String()
}

// Generate produces the complete packed artifact for the configured roots.
func Generate(options Options) (string, error) {
	sections, sectionsError := Sections(options)
	if sectionsError != nil {
		return "", sectionsError
	}
	return Assemble(sections), nil
}

// Structure traverses rootDirectory once and returns only the structure
// listing, for callers that want partial output.
func Structure(rootDirectory string, exclusions config.Exclusions) (string, error) {
	entries, walkError := scan.Collect(rootDirectory, exclusions)
	if walkError != nil {
		return "", walkError
	}
	return renderStructure(entries), nil
}

// Contents traverses rootDirectory once and returns only the per-file content
// blocks, for callers that want partial output.
func Contents(rootDirectory string, exclusions config.Exclusions) (string, error) {
	entries, walkError := scan.Collect(rootDirectory, exclusions)
	if walkError != nil {
		return "", walkError
	}
	return renderContents(entries, exclusions), nil
}

// validateRoot resolves rootPath to a clean absolute directory path.
func validateRoot(rootPath string) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return "", absoluteError
	}
	cleanRoot := filepath.Clean(absoluteRoot)
	rootInformation, statError := os.Stat(cleanRoot)
	if statError != nil {
		return "", statError
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectory)
	}
	return cleanRoot, nil
}

// renderStructure projects the entry sequence into the structure listing:
// one line per directory (trailing slash), included file, or denied subtree.
func renderStructure(entries []scan.Entry) string {
	var builder strings.Builder
	for _, entry := range entries {
		switch entry.Kind {
		case scan.EntryDirectory:
			builder.WriteString(entry.RelativePath + string(filepath.Separator) + "\n")
		case scan.EntryFile:
			builder.WriteString(entry.RelativePath + "\n")
		case scan.EntryDenied:
			builder.WriteString(entry.RelativePath + permissionDeniedSuffix)
		}
	}
	return builder.String()
}

// renderContents projects the entry sequence into the content section. Every
// block, content or skip reason, ends with exactly one blank line so a
// downstream parser can split on the separator unambiguously.
func renderContents(entries []scan.Entry, exclusions config.Exclusions) string {
	var builder strings.Builder
	for _, entry := range entries {
		switch entry.Kind {
		case scan.EntryFile:
			writeFileBlock(&builder, entry, exclusions.MaxFileSize)
		case scan.EntryDenied:
			builder.WriteString(entry.RelativePath + permissionDeniedSuffix + "\n")
		}
	}
	return builder.String()
}

// writeFileBlock emits one file's separator-framed block. The decision order
// is size gate, then binary sniff, then UTF-8 read; each failure downgrades to
// a skip reason instead of aborting the run.
func writeFileBlock(builder *strings.Builder, entry scan.Entry, maxFileSize int64) {
	builder.WriteString(fileSeparator + "\nFile: " + entry.RelativePath + "\n" + fileSeparator + "\n")

	if entry.SizeBytes > maxFileSize {
		fmt.Fprintf(builder, contentSizeSkippedFormat,
			utils.FormatMebibytes(entry.SizeBytes), utils.FormatMebibytes(maxFileSize))
		return
	}

	isBinary, sniffError := utils.IsFileBinary(entry.AbsolutePath)
	if sniffError != nil {
		fmt.Fprintf(builder, contentErrorSkippedFormat, sniffError)
		return
	}
	if isBinary {
		builder.WriteString(contentBinarySkipped)
		return
	}

	fileBytes, readError := os.ReadFile(entry.AbsolutePath)
	if readError != nil {
		fmt.Fprintf(builder, contentErrorSkippedFormat, readError)
		return
	}
	if !utf8.Valid(fileBytes) {
		fmt.Fprintf(builder, contentErrorSkippedFormat, invalidEncodingMessage)
		return
	}
	builder.WriteString("Content:\n" + string(fileBytes) + "\n\n")
}
