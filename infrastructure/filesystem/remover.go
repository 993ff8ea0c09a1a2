package filesystem

import (
	"errors"
	"io/fs"
	"os"

	"media-transcribe/domain/media"
)

// Remover implements media.FileRemover with os.Remove
type Remover struct{}

// NewRemover creates a new filesystem remover
func NewRemover() *Remover {
	return &Remover{}
}

// Remove deletes path. A file that is already gone is not an error.
func (r *Remover) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Ensure Remover implements media.FileRemover
var _ media.FileRemover = (*Remover)(nil)
