package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/collect/internal/types"
	"github.com/temirov/collect/internal/utils"
)

const (
	// IndentGlyph is repeated once per nesting level in front of tree entries.
	IndentGlyph = "│   "
	// BranchGlyph prefixes folder names.
	BranchGlyph = "├───"
	// LastBranchGlyph is recognized as a folder marker when deciding on continuation lines.
	LastBranchGlyph = "└───"
	// ContinuationLine is written between an entry and a folder marker that follows it.
	ContinuationLine = "│       "

	// errorBuildTreeFormat is used when building the tree fails.
	errorBuildTreeFormat = "building tree for %s: %w"

	debugTreeRenderedMessage = "tree rendered"
)

// DefaultTreeSkipFolders lists the folders excluded from the tree when no list is provided.
var DefaultTreeSkipFolders = []string{".next", "node_modules"}

// TreeRenderer renders an indented listing of a directory tree.
type TreeRenderer struct {
	// SkipFolders names directories that are never entered. Nil selects DefaultTreeSkipFolders;
	// an empty, non-nil slice excludes nothing.
	SkipFolders []string
	// Logger receives debug output and unreadable directory warnings. A nil Logger discards them.
	Logger *zap.Logger
}

// GenerateDirectoryTree writes the tree listing of rootDirectoryPath to outputFilePath.
// A nil skipFolders selects DefaultTreeSkipFolders.
func GenerateDirectoryTree(rootDirectoryPath string, outputFilePath string, skipFolders []string) error {
	renderer := TreeRenderer{SkipFolders: skipFolders}
	_, renderError := renderer.Render(rootDirectoryPath, outputFilePath)
	return renderError
}

// Render creates or truncates outputFilePath, builds the tree lines for rootDirectoryPath and
// writes them. The output file exists while the tree is built, so it lists itself when it is
// located inside the tree.
func (renderer *TreeRenderer) Render(rootDirectoryPath string, outputFilePath string) (summary types.TreeSummary, err error) {
	summary.OutputPath = outputFilePath

	// #nosec G304
	outputFile, createError := os.Create(outputFilePath)
	if createError != nil {
		return summary, fmt.Errorf(errorCreateOutputFormat, outputFilePath, createError)
	}
	defer func() {
		if closeError := outputFile.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseOutputFormat, outputFilePath, closeError)
		}
	}()

	treeLines, buildError := renderer.buildLines(rootDirectoryPath, &summary)
	if buildError != nil {
		return summary, buildError
	}

	outputWriter := bufio.NewWriter(outputFile)
	linesWritten, writeError := WriteTreeLines(outputWriter, treeLines)
	if writeError == nil {
		writeError = outputWriter.Flush()
	}
	if writeError != nil {
		return summary, fmt.Errorf(errorWriteOutputFormat, outputFilePath, writeError)
	}
	summary.LinesWritten = linesWritten

	utils.LoggerOrNop(renderer.Logger).Debug(debugTreeRenderedMessage,
		zap.String("output", outputFilePath),
		zap.Int("directories", summary.Directories),
		zap.Int("files", summary.Files),
	)
	return summary, nil
}

// BuildLines returns the ordered tree lines for rootDirectoryPath without the continuation lines.
func (renderer *TreeRenderer) BuildLines(rootDirectoryPath string) ([]string, error) {
	return renderer.buildLines(rootDirectoryPath, &types.TreeSummary{})
}

// buildLines collects the tree lines and counts listed directories and files into summary.
func (renderer *TreeRenderer) buildLines(rootDirectoryPath string, summary *types.TreeSummary) ([]string, error) {
	skipFolders := renderer.SkipFolders
	if skipFolders == nil {
		skipFolders = DefaultTreeSkipFolders
	}

	var treeLines []string
	walker := Walker{SkipFolders: skipFolders, Logger: renderer.Logger}
	walkError := walker.Walk(rootDirectoryPath, func(visit DirectoryVisit) error {
		sortedFileNames := append([]string(nil), visit.FileNames...)
		sort.Strings(sortedFileNames)

		if visit.RelativePath == rootRelativePath {
			treeLines = append(treeLines, sortedFileNames...)
			summary.Files += len(sortedFileNames)
			return nil
		}

		folderIndent := strings.Repeat(IndentGlyph, visit.Depth)
		treeLines = append(treeLines, folderIndent+BranchGlyph+visit.Name)
		summary.Directories++

		fileIndent := strings.Repeat(IndentGlyph, visit.Depth+1)
		for _, fileName := range sortedFileNames {
			treeLines = append(treeLines, fileIndent+fileName)
		}
		summary.Files += len(sortedFileNames)
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, rootDirectoryPath, walkError)
	}
	return treeLines, nil
}

// WriteTreeLines writes every line followed by a newline. After a non-empty line that is not
// itself a bare branch marker, a ContinuationLine is added when the next line is a non-empty
// folder marker. It returns the number of lines written including continuation lines.
func WriteTreeLines(writer io.Writer, treeLines []string) (int, error) {
	linesWritten := 0
	for lineIndex, treeLine := range treeLines {
		if _, writeError := io.WriteString(writer, treeLine+"\n"); writeError != nil {
			return linesWritten, writeError
		}
		linesWritten++
		if lineIndex == len(treeLines)-1 || treeLine == "" || endsWithBranch(treeLine) {
			continue
		}
		nextLine := treeLines[lineIndex+1]
		if nextLine != "" && isFolderMarker(nextLine) {
			if _, writeError := io.WriteString(writer, ContinuationLine+"\n"); writeError != nil {
				return linesWritten, writeError
			}
			linesWritten++
		}
	}
	return linesWritten, nil
}

func endsWithBranch(treeLine string) bool {
	return strings.HasSuffix(treeLine, BranchGlyph) || strings.HasSuffix(treeLine, LastBranchGlyph)
}

func isFolderMarker(treeLine string) bool {
	return strings.Contains(treeLine, BranchGlyph) || strings.Contains(treeLine, LastBranchGlyph)
}
