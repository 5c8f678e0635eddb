// Package scan implements the iterative directory traversal that feeds both
// the structure and the content sections of a packed report. One walk yields a
// classified entry sequence; rendering is left to the projections in the
// report package so the filesystem is listed exactly once per root.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dirpack/dirpack/internal/config"
)

// EntryKind classifies one traversal entry.
type EntryKind int

const (
	// EntryDirectory marks a discovered subdirectory. Its name is listed even
	// when the directory itself is excluded; exclusion only prevents expansion.
	EntryDirectory EntryKind = iota
	// EntryFile marks a file that passed the exclusion filter.
	EntryFile
	// EntryDenied marks a directory whose listing failed with a permission
	// error; the entry stands in for the entire unreadable subtree.
	EntryDenied
)

// Entry is one classified result of the traversal. RelativePath is rendered
// with the platform separator and is empty for a denied root listing.
type Entry struct {
	RelativePath string
	AbsolutePath string
	Kind         EntryKind
	SizeBytes    int64
}

// frame is one pending directory awaiting expansion. Frames live only on the
// traversal stack, so each directory is expanded at most once and the walk
// never constructs a path outside the root.
type frame struct {
	relativePath string
	absoluteDir  string
}

// Walk traverses rootDirectory depth-first using an explicit stack and invokes
// handler for every classified entry. Within a directory, children are visited
// in lexicographic order of their relative path string, and subdirectories are
// expanded in that same order, which makes the sequence deterministic for an
// unchanged filesystem. Exclusion of a directory is evaluated when the
// directory is popped for expansion; the root itself is never tested.
// A handler error aborts the walk. Listing failures other than permission
// errors abort the walk for this root.
func Walk(rootDirectory string, exclusions config.Exclusions, handler func(Entry) error) error {
	if handler == nil {
		return fmt.Errorf("scan: walk handler is nil")
	}

	stack := []frame{{relativePath: "", absoluteDir: rootDirectory}}

	for len(stack) > 0 {
		currentFrame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if currentFrame.relativePath != "" && exclusions.ExcludesDirectory(filepath.Base(currentFrame.absoluteDir)) {
			continue
		}

		directoryEntries, listError := os.ReadDir(currentFrame.absoluteDir)
		if listError != nil {
			if errors.Is(listError, fs.ErrPermission) {
				deniedEntry := Entry{
					RelativePath: currentFrame.relativePath,
					AbsolutePath: currentFrame.absoluteDir,
					Kind:         EntryDenied,
				}
				if handlerError := handler(deniedEntry); handlerError != nil {
					return handlerError
				}
				continue
			}
			return fmt.Errorf("scan: listing %s: %w", currentFrame.absoluteDir, listError)
		}

		children := make([]Entry, 0, len(directoryEntries))
		for _, directoryEntry := range directoryEntries {
			childRelativePath := filepath.Join(currentFrame.relativePath, directoryEntry.Name())
			childAbsolutePath := filepath.Join(currentFrame.absoluteDir, directoryEntry.Name())
			if directoryEntry.IsDir() {
				children = append(children, Entry{
					RelativePath: childRelativePath,
					AbsolutePath: childAbsolutePath,
					Kind:         EntryDirectory,
				})
				continue
			}
			if exclusions.ExcludesFile(directoryEntry.Name()) {
				continue
			}
			var childSize int64
			if entryInformation, infoError := directoryEntry.Info(); infoError == nil {
				childSize = entryInformation.Size()
			}
			children = append(children, Entry{
				RelativePath: childRelativePath,
				AbsolutePath: childAbsolutePath,
				Kind:         EntryFile,
				SizeBytes:    childSize,
			})
		}
		sort.Slice(children, func(firstIndex, secondIndex int) bool {
			return children[firstIndex].RelativePath < children[secondIndex].RelativePath
		})

		var discoveredDirectories []frame
		for _, childEntry := range children {
			if handlerError := handler(childEntry); handlerError != nil {
				return handlerError
			}
			if childEntry.Kind == EntryDirectory {
				discoveredDirectories = append(discoveredDirectories, frame{
					relativePath: childEntry.RelativePath,
					absoluteDir:  childEntry.AbsolutePath,
				})
			}
		}
		// Reverse push so subdirectories pop in sorted order.
		for directoryIndex := len(discoveredDirectories) - 1; directoryIndex >= 0; directoryIndex-- {
			stack = append(stack, discoveredDirectories[directoryIndex])
		}
	}
	return nil
}

// Collect materializes one walk of rootDirectory into a slice so that several
// projections can share a single filesystem pass.
func Collect(rootDirectory string, exclusions config.Exclusions) ([]Entry, error) {
	var entries []Entry
	walkError := Walk(rootDirectory, exclusions, func(entry Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}
	return entries, nil
}
