package clipboard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recordingCopier struct {
	copied string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = text
	return copier.err
}

func TestCopyFileCopiesContent(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "structure.txt")
	if err := os.WriteFile(filePath, []byte("a.txt\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	copier := &recordingCopier{}
	if err := CopyFile(copier, filePath); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	if copier.copied != "a.txt\n" {
		t.Fatalf("unexpected clipboard content %q", copier.copied)
	}
}

func TestCopyFileReportsErrors(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "missing.txt")
	if err := CopyFile(&recordingCopier{}, missingPath); err == nil {
		t.Fatalf("expected error for missing file")
	}

	filePath := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	copyFailure := errors.New("clipboard unavailable")
	if err := CopyFile(&recordingCopier{err: copyFailure}, filePath); !errors.Is(err, copyFailure) {
		t.Fatalf("expected wrapped copy error, got %v", err)
	}
}
