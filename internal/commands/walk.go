// Package commands contains the directory traversal routines behind each command.
package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/collect/internal/utils"
)

const (
	// errorReadDirectoryFormat is used when the root directory cannot be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// warningReadDirectoryMessage is logged for every nested directory that cannot be listed.
	warningReadDirectoryMessage = "unable to read directory"

	rootRelativePath = "."
)

// DirectoryVisit describes one directory handed to a VisitFunc.
type DirectoryVisit struct {
	// AbsolutePath is the absolute path of the visited directory.
	AbsolutePath string
	// RelativePath is the forward-slash path relative to the walk root, "." for the root itself.
	RelativePath string
	// Name is the directory's own entry name, "." for the root itself.
	Name string
	// Depth is the number of separators in RelativePath. The root and its direct children have depth zero.
	Depth int
	// DirectoryNames lists the subdirectories that will be descended into, after pruning.
	DirectoryNames []string
	// FileNames lists every entry of the visited directory that is neither a directory
	// nor a symbolic link to one.
	FileNames []string
}

// VisitFunc is called once per visited directory, before any of its subdirectories are visited.
type VisitFunc func(visit DirectoryVisit) error

// Walker walks a directory tree top-down, pruning skipped folders before descent.
type Walker struct {
	// SkipFolders names directories that are never entered.
	SkipFolders []string
	// Logger receives a warning for every nested directory that cannot be listed. A nil Logger discards them.
	Logger *zap.Logger
}

// WalkPruned walks the tree rooted at rootDirectoryPath top-down.
// Subdirectories named in skipFolders are removed before descent and never read.
// Entries are reported in the order os.ReadDir returns them.
func WalkPruned(rootDirectoryPath string, skipFolders []string, visit VisitFunc) error {
	walker := Walker{SkipFolders: skipFolders}
	return walker.Walk(rootDirectoryPath, visit)
}

// Walk visits rootDirectoryPath and every retained descendant directory.
// A root that cannot be listed is an error. A nested directory that cannot be listed is
// logged and skipped together with everything below it. Symbolic links to directories are
// neither reported nor followed.
func (walker *Walker) Walk(rootDirectoryPath string, visit VisitFunc) error {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootEntries, readDirectoryError := os.ReadDir(absoluteRootDirPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, absoluteRootDirPath, readDirectoryError)
	}
	rootVisit := DirectoryVisit{
		AbsolutePath: absoluteRootDirPath,
		RelativePath: rootRelativePath,
		Name:         rootRelativePath,
	}
	state := walkState{
		skipFolderSet: utils.NameSet(walker.SkipFolders),
		logger:        utils.LoggerOrNop(walker.Logger),
		visit:         visit,
	}
	return state.walkEntries(rootVisit, rootEntries)
}

type walkState struct {
	skipFolderSet map[string]struct{}
	logger        *zap.Logger
	visit         VisitFunc
}

func (state *walkState) walkEntries(directoryVisit DirectoryVisit, directoryEntries []os.DirEntry) error {
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() {
			if _, skipped := state.skipFolderSet[entryName]; skipped {
				continue
			}
			directoryVisit.DirectoryNames = append(directoryVisit.DirectoryNames, entryName)
			continue
		}
		if isDirectoryLink(filepath.Join(directoryVisit.AbsolutePath, entryName), directoryEntry) {
			continue
		}
		directoryVisit.FileNames = append(directoryVisit.FileNames, entryName)
	}

	if visitError := state.visit(directoryVisit); visitError != nil {
		return visitError
	}

	for _, directoryName := range directoryVisit.DirectoryNames {
		childVisit := DirectoryVisit{
			AbsolutePath: filepath.Join(directoryVisit.AbsolutePath, directoryName),
			RelativePath: joinRelativePath(directoryVisit.RelativePath, directoryName),
			Name:         directoryName,
			Depth:        childDepth(directoryVisit),
		}
		childEntries, readDirectoryError := os.ReadDir(childVisit.AbsolutePath)
		if readDirectoryError != nil {
			state.logger.Warn(warningReadDirectoryMessage, zap.String("path", childVisit.RelativePath), zap.Error(readDirectoryError))
			continue
		}
		if walkError := state.walkEntries(childVisit, childEntries); walkError != nil {
			return walkError
		}
	}
	return nil
}

// childDepth is zero for direct children of the root and one more than the parent otherwise.
func childDepth(parentVisit DirectoryVisit) int {
	if parentVisit.RelativePath == rootRelativePath {
		return 0
	}
	return parentVisit.Depth + 1
}

// isDirectoryLink reports whether the entry is a symbolic link whose target is a directory.
func isDirectoryLink(entryPath string, directoryEntry os.DirEntry) bool {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(entryPath)
	return statError == nil && targetInfo.IsDir()
}

// joinRelativePath appends name to a forward-slash directory path relative to the root.
func joinRelativePath(relativeDirectoryPath string, name string) string {
	if relativeDirectoryPath == rootRelativePath || relativeDirectoryPath == "" {
		return name
	}
	return relativeDirectoryPath + "/" + name
}
