package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/collect/internal/types"
	"github.com/temirov/collect/internal/utils"
)

const (
	// pathMarkerFormat opens a content block for one file.
	pathMarkerFormat = "// %s\n\n"
	// readErrorMarkerFormat replaces a content block when the file cannot be read.
	readErrorMarkerFormat = "// %s [Read error: %v]\n\n"
	// contentBlockSeparator terminates a content block.
	contentBlockSeparator = "\n\n"

	// errorCreateOutputFormat is used when the output file cannot be created.
	errorCreateOutputFormat = "creating output file %s: %w"
	// errorCloseOutputFormat is used when the output file cannot be closed.
	errorCloseOutputFormat = "closing output file %s: %w"
	// errorWriteOutputFormat is used when buffered output cannot be flushed.
	errorWriteOutputFormat = "writing output file %s: %w"
	// errorCollectFormat is used when the traversal fails.
	errorCollectFormat = "collecting files under %s: %w"

	// warningReadFileMessage is logged for every file replaced by a read error marker.
	warningReadFileMessage = "unable to read file"
)

// errInvalidText reports file content that is not valid UTF-8.
var errInvalidText = errors.New("content is not valid UTF-8 text")

// Aggregator concatenates the text of every file under a directory into a single output file.
type Aggregator struct {
	// SkipFolders names directories that are never entered.
	SkipFolders []string
	// SkipFiles names files that are never written, in any directory.
	SkipFiles []string
	// Logger receives a warning for every unreadable file or directory. A nil Logger discards them.
	Logger *zap.Logger
}

// CollectFiles writes the content of every file under rootDirectoryPath into outputFilePath.
// Each file is preceded by a "// relative/path" marker. Files that cannot be read are
// represented by a marker carrying the read error instead of content.
func CollectFiles(rootDirectoryPath string, outputFilePath string, skipFolders []string, skipFiles []string) error {
	aggregator := Aggregator{SkipFolders: skipFolders, SkipFiles: skipFiles}
	_, collectError := aggregator.Collect(rootDirectoryPath, outputFilePath)
	return collectError
}

// Collect creates or truncates outputFilePath and fills it with one block per file found under
// rootDirectoryPath, in walk order. Any file whose name equals the output file's name is skipped.
func (aggregator *Aggregator) Collect(rootDirectoryPath string, outputFilePath string) (summary types.CollectSummary, err error) {
	logger := utils.LoggerOrNop(aggregator.Logger)
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

	outputWriter := bufio.NewWriter(outputFile)
	outputFileName := filepath.Base(outputFilePath)
	skipFileSet := utils.NameSet(aggregator.SkipFiles)

	walker := Walker{SkipFolders: aggregator.SkipFolders, Logger: logger}
	walkError := walker.Walk(rootDirectoryPath, func(visit DirectoryVisit) error {
		for _, fileName := range visit.FileNames {
			if fileName == outputFileName {
				continue
			}
			if _, skipped := skipFileSet[fileName]; skipped {
				continue
			}

			relativePath := joinRelativePath(visit.RelativePath, fileName)
			fileContent, readError := readTextFile(filepath.Join(visit.AbsolutePath, fileName))
			if readError != nil {
				logger.Warn(warningReadFileMessage, zap.String("path", relativePath), zap.Error(readError))
				fmt.Fprintf(outputWriter, readErrorMarkerFormat, relativePath, readError)
				summary.ReadErrors++
				continue
			}

			fmt.Fprintf(outputWriter, pathMarkerFormat, relativePath)
			outputWriter.Write(fileContent)
			outputWriter.WriteString(contentBlockSeparator)
			summary.FilesWritten++
			summary.ContentBytes += int64(len(fileContent))
		}
		return nil
	})
	if walkError != nil {
		return summary, fmt.Errorf(errorCollectFormat, rootDirectoryPath, walkError)
	}

	if flushError := outputWriter.Flush(); flushError != nil {
		return summary, fmt.Errorf(errorWriteOutputFormat, outputFilePath, flushError)
	}
	return summary, nil
}

// readTextFile reads the whole file and rejects content that is not UTF-8 text.
//
// #nosec G304
func readTextFile(filePath string) ([]byte, error) {
	fileBytes, fileReadError := os.ReadFile(filePath)
	if fileReadError != nil {
		return nil, fileReadError
	}
	if !utf8.Valid(fileBytes) {
		return nil, errInvalidText
	}
	return fileBytes, nil
}
