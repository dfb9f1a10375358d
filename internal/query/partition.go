package query

import (
	"fmt"

	"github.com/ppiankov/elementa/internal/model"
)

// DefaultChunkSize keeps each request well inside the model's output budget
const DefaultChunkSize = 30

// Partition splits [1, n] into consecutive ranges of at most size elements,
// ascending by First. The last range may be shorter.
func Partition(n, size int) ([]model.ChunkRange, error) {
	if size < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if n < 1 {
		return nil, nil
	}

	chunks := make([]model.ChunkRange, 0, (n+size-1)/size)
	for first := 1; first <= n; first += size {
		last := first + size - 1
		if last > n {
			last = n
		}
		chunks = append(chunks, model.ChunkRange{First: first, Last: last})
	}
	return chunks, nil
}
