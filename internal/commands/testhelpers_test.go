package commands_test

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile creates parent directories and writes content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(filePath), makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("write %s: %v", filePath, writeError)
	}
}

// readTestFile returns the file content, failing the test on error.
func readTestFile(testingHandle *testing.T, filePath string) string {
	testingHandle.Helper()
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		testingHandle.Fatalf("read %s: %v", filePath, readError)
	}
	return string(fileBytes)
}
