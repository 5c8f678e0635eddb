package report

import (
	"strings"
	"time"

	"github.com/dirpack/dirpack/internal/utils"
)

const headerBanner = "================================================================"

const headerBoilerplate = `Purpose:
--------
This file contains a packed representation of one or more directory trees.
It is designed to be easily consumable by AI systems for analysis, code
review, or other automated processes.

File Format:
------------
The content is organized as follows:
1. This header section
2. For each processed root, a directory structure listing followed by
   multiple file entries, each consisting of:
   a. A separator line (================)
   b. The file path (File: path/to/file)
   c. Another separator line
   d. The full contents of the file
   e. A blank line

Usage Guidelines:
-----------------
1. This file should be treated as read-only. Any changes should be made to
   the original files, not this packed version.
2. When processing this file, use the separators and "File:" markers to
   distinguish between different files.
3. Be aware that this file may contain sensitive information. Handle it with
   the same level of security as you would the original files.

Notes:
------
- Some files and directories may have been excluded based on the exclusion
  configuration.
- Binary files are not included in this packed representation.

`

// buildHeader renders the fixed header block: banner, generation timestamp,
// the list of processed root paths, and the static boilerplate sections.
func buildHeader(generatedAt time.Time, rootPaths []string) string {
	var builder strings.Builder
	builder.WriteString(headerBanner + "\n")
	builder.WriteString("DIRPACK OUTPUT FILE\n")
	builder.WriteString(headerBanner + "\n\n")
	builder.WriteString("This file was generated by dirpack on: " + utils.FormatReportTimestamp(generatedAt) + "\n\n")
	builder.WriteString("Processed Roots:\n")
	for _, rootPath := range rootPaths {
		builder.WriteString("- " + rootPath + "\n")
	}
	builder.WriteString("\n")
	builder.WriteString(headerBoilerplate)
	builder.WriteString("\n" + headerBanner + "\n")
	builder.WriteString("Repository Files\n")
	builder.WriteString(headerBanner + "\n\n")
	return builder.String()
}

// buildInstructions renders the fixed ten-step analysis guidance, emitted at
// most once per run, before the first root's structure section.
func buildInstructions(directoryName string) string {
	return "Prompt: Analyze the " + directoryName + " directory to understand its structure, purpose, and functionality. Follow these steps to study the contents:\n\n" +
		"1. Read the README file to gain an overview of the project, its goals, and any setup instructions.\n\n" +
		"2. Examine the directory structure to understand how the files and directories are organized.\n\n" +
		"3. Identify the main entry point of the application (e.g., main.py, app.py, index.js) and start analyzing the code flow from there.\n\n" +
		"4. Study the dependencies and libraries used in the project to understand the external tools and frameworks being utilized.\n\n" +
		"5. Analyze the core functionality of the project by examining the key modules, classes, and functions.\n\n" +
		"6. Look for any configuration files (e.g., config.py, .env) to understand how the project is configured and what settings are available.\n\n" +
		"7. Investigate any tests or test directories to see how the project ensures code quality and handles different scenarios.\n\n" +
		"8. Review any documentation or inline comments to gather insights into the codebase and its intended behavior.\n\n" +
		"9. Identify any potential areas for improvement, optimization, or further exploration based on your analysis.\n\n" +
		"10. Provide a summary of your findings, including the project's purpose, key features, and any notable observations or recommendations.\n\n" +
		"Use the files and contents provided below to complete this analysis:\n\n"
}
