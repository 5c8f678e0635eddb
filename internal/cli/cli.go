// Package cli provides the command line interface.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dirpack/dirpack/internal/config"
	"github.com/dirpack/dirpack/internal/report"
	"github.com/dirpack/dirpack/internal/services/clipboard"
	"github.com/dirpack/dirpack/internal/tokenizer"
	"github.com/dirpack/dirpack/internal/utils"
)

const (
	configFlagName      = "config"
	outputFlagName      = "output"
	forceFlagName       = "force"
	clipboardFlagName   = "clipboard"
	maxFileSizeFlagName = "max-file-size"
	excludeDirFlagName  = "exclude-dir"
	excludeExtFlagName  = "exclude-ext"
	excludeFileFlagName = "exclude-file"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	versionFlagName     = "version"

	versionTemplate = "dirpack version: %s\n"
	defaultPath     = "."

	rootUse              = "dirpack [directories...]"
	rootShortDescription = "dirpack packs directory trees into a single text artifact"
	rootLongDescription  = `dirpack walks one or more directory trees and produces one deterministic
text file describing their structure and file contents, suitable for feeding
an entire codebase to a text-based analysis process.

Exclusion sets and the content size limit are read from a Java-style
properties file (max.file.size, excluded.dirs, excluded.extensions,
excluded.files) and can be extended with flags.`
	rootUsageExample = `  # Pack the current directory using dirpack.properties when present
  dirpack

  # Pack two roots into an explicit output file, skipping class files
  dirpack --exclude-ext class -o packed.txt ./service ./library

  # Pack and copy the artifact to the clipboard, reporting token counts
  dirpack -c --tokens .`

	configFlagDescription      = "path to the properties configuration file"
	outputFlagDescription      = "path of the output artifact (default <root>_contents.txt inside the first root)"
	forceFlagDescription       = "overwrite an existing output file without confirmation"
	clipboardFlagDescription   = "copy the artifact to the system clipboard"
	maxFileSizeFlagDescription = "maximum file size in bytes to include content for"
	excludeDirFlagDescription  = "directory name to exclude (repeatable)"
	excludeExtFlagDescription  = "file extension to exclude, without the leading dot (repeatable)"
	excludeFileFlagDescription = "file name to exclude (repeatable)"
	tokensFlagDescription      = "report per-root token counts to the console"
	modelFlagDescription       = "tokenizer model used for token counts"
	versionFlagDescription     = "display application version"

	overwritePromptFormat      = "File %s already exists. Overwrite? [y/N]: "
	overwriteDeclinedFormat    = "existing file %s left untouched"
	artifactSavedFormat        = "Directory contents saved to %s"
	artifactCopiedMessage      = "artifact copied to clipboard"
	clipboardFailedFormat      = "unable to copy artifact to clipboard: %v"
	writeArtifactErrorFormat   = "writing artifact to %s: %w"
	tokenizerUnavailableFormat = "token counting disabled: %v"
	tokenCountFormat           = "%s: %d tokens (%s)"
	tokenTotalFormat           = "total: %d tokens (%s)"

	affirmativeShort = "y"
	affirmativeLong  = "yes"
)

// packOptions stores the flag values of the root command.
type packOptions struct {
	configPath         string
	outputPath         string
	forceOverwrite     bool
	copyToClipboard    bool
	maxFileSize        int64
	excludedDirs       []string
	excludedExtensions []string
	excludedFiles      []string
	tokensEnabled      bool
	tokenizerModel     string
}

// Execute runs the dirpack application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(applicationLogger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationLogger *zap.Logger) *cobra.Command {
	var showVersion bool
	var options packOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return runPack(command, applicationLogger, options, arguments)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	rootCommand.Flags().BoolVarP(&options.forceOverwrite, forceFlagName, "f", false, forceFlagDescription)
	rootCommand.Flags().BoolVarP(&options.copyToClipboard, clipboardFlagName, "c", false, clipboardFlagDescription)
	rootCommand.Flags().Int64Var(&options.maxFileSize, maxFileSizeFlagName, config.DefaultMaxFileSize, maxFileSizeFlagDescription)
	rootCommand.Flags().StringArrayVar(&options.excludedDirs, excludeDirFlagName, nil, excludeDirFlagDescription)
	rootCommand.Flags().StringArrayVar(&options.excludedExtensions, excludeExtFlagName, nil, excludeExtFlagDescription)
	rootCommand.Flags().StringArrayVar(&options.excludedFiles, excludeFileFlagName, nil, excludeFileFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, "", modelFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runPack executes one packing run: resolve configuration, traverse the
// roots, assemble the artifact, and persist it. Only the inability to persist
// the artifact, or a completely unusable root set, fails the run.
func runPack(command *cobra.Command, applicationLogger *zap.Logger, options packOptions, roots []string) error {
	exclusions := resolveExclusions(command, applicationLogger, options)

	sections, sectionsError := report.Sections(report.Options{
		Roots:      roots,
		Exclusions: exclusions,
		Warn:       func(message string) { applicationLogger.Warn(message) },
	})
	if sectionsError != nil {
		return sectionsError
	}
	artifact := report.Assemble(sections)

	if options.tokensEnabled {
		reportTokenCounts(applicationLogger, options.tokenizerModel, sections)
	}

	outputPath := options.outputPath
	if outputPath == "" {
		outputPath = filepath.Join(sections[0].RootPath, sections[0].RootName+"_contents.txt")
	}

	if !options.forceOverwrite {
		if _, statError := os.Stat(outputPath); statError == nil {
			confirmed := confirmOverwrite(command, outputPath)
			if !confirmed {
				applicationLogger.Info(fmt.Sprintf(overwriteDeclinedFormat, outputPath))
				return nil
			}
		}
	}

	if writeError := os.WriteFile(outputPath, []byte(artifact), 0o644); writeError != nil {
		return fmt.Errorf(writeArtifactErrorFormat, outputPath, writeError)
	}
	applicationLogger.Info(fmt.Sprintf(artifactSavedFormat, outputPath))

	if options.copyToClipboard {
		if copyError := clipboard.NewSystemWriter().Write(artifact); copyError != nil {
			applicationLogger.Warn(fmt.Sprintf(clipboardFailedFormat, copyError))
		} else {
			applicationLogger.Info(artifactCopiedMessage)
		}
	}
	return nil
}

// resolveExclusions loads the properties file and overlays flag values on top
// of it. Flag-supplied names extend the loaded sets; the size flag replaces
// the loaded limit only when explicitly set.
func resolveExclusions(command *cobra.Command, applicationLogger *zap.Logger, options packOptions) config.Exclusions {
	configPath := options.configPath
	if configPath == "" {
		configPath = config.DefaultPropertiesFileName
	}
	exclusions, diagnostics := config.LoadProperties(configPath)
	for _, diagnostic := range diagnostics {
		applicationLogger.Warn(diagnostic)
	}
	if command.Flags().Changed(maxFileSizeFlagName) {
		exclusions.MaxFileSize = options.maxFileSize
	}
	extendNameSet(exclusions.Directories, options.excludedDirs)
	extendNameSet(exclusions.Extensions, options.excludedExtensions)
	extendNameSet(exclusions.Files, options.excludedFiles)
	return exclusions
}

func extendNameSet(nameSet map[string]struct{}, names []string) {
	for _, name := range names {
		trimmedName := strings.TrimSpace(name)
		if trimmedName != "" {
			nameSet[trimmedName] = struct{}{}
		}
	}
}

// confirmOverwrite asks on the command's input stream whether an existing
// output file may be replaced. Anything but an explicit yes declines.
func confirmOverwrite(command *cobra.Command, outputPath string) bool {
	fmt.Fprintf(command.OutOrStdout(), overwritePromptFormat, outputPath)
	inputReader := bufio.NewReader(command.InOrStdin())
	response, readError := inputReader.ReadString('\n')
	if readError != nil && response == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(response))
	return answer == affirmativeShort || answer == affirmativeLong
}

// reportTokenCounts estimates the token count of every root section
// concurrently and logs one line per root, in root order. Counting happens
// after assembly and never influences the artifact bytes.
func reportTokenCounts(applicationLogger *zap.Logger, model string, sections []report.Section) {
	counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		applicationLogger.Warn(fmt.Sprintf(tokenizerUnavailableFormat, counterError))
		return
	}

	sectionTokenCounts := make([]int, len(sections))
	var countGroup errgroup.Group
	for sectionIndex, section := range sections {
		sectionIndex, section := sectionIndex, section
		countGroup.Go(func() error {
			tokenCount, countError := counter.CountString(section.Text)
			if countError != nil {
				return countError
			}
			sectionTokenCounts[sectionIndex] = tokenCount
			return nil
		})
	}
	if waitError := countGroup.Wait(); waitError != nil {
		applicationLogger.Warn(fmt.Sprintf(tokenizerUnavailableFormat, waitError))
		return
	}

	totalTokenCount := 0
	for sectionIndex, section := range sections {
		applicationLogger.Info(fmt.Sprintf(tokenCountFormat, section.RootName, sectionTokenCounts[sectionIndex], resolvedModel))
		totalTokenCount += sectionTokenCounts[sectionIndex]
	}
	if len(sections) > 1 {
		applicationLogger.Info(fmt.Sprintf(tokenTotalFormat, totalTokenCount, resolvedModel))
	}
}
