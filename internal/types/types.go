// Package types defines the data structures shared between the collect packages.
package types

const (
	CommandFiles = "files"
	CommandTree  = "tree"
)

// CollectSummary describes the result of one aggregation run.
type CollectSummary struct {
	OutputPath   string
	FilesWritten int
	ReadErrors   int
	ContentBytes int64
}

// TreeSummary describes the result of one tree rendering run.
type TreeSummary struct {
	OutputPath   string
	Directories  int
	Files        int
	LinesWritten int
}
