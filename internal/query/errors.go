package query

import (
	"errors"
	"fmt"

	"github.com/ppiankov/elementa/internal/model"
)

// ErrIncompleteResult means every chunk answered but the merged answers
// do not cover each element exactly once with a valid value
var ErrIncompleteResult = errors.New("incomplete result")

// ChunkError identifies the range whose dispatch or validation failed
type ChunkError struct {
	Chunk model.ChunkRange
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %s: %v", e.Chunk, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// incomplete builds an ErrIncompleteResult with details
func incomplete(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIncompleteResult, fmt.Sprintf(format, args...))
}
