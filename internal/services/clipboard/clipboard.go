// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	return clipboard.WriteAll(text)
}

// CopyFile copies the content of the file at filePath using copier.
//
// #nosec G304
func CopyFile(copier Copier, filePath string) error {
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return fmt.Errorf("read %s for clipboard: %w", filePath, readError)
	}
	if copyError := copier.Copy(string(fileBytes)); copyError != nil {
		return fmt.Errorf("copy %s to clipboard: %w", filePath, copyError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
