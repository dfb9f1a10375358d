package model

import (
	"fmt"

	"github.com/ppiankov/elementa/internal/element"
)

// ChunkRange is an inclusive range of atomic numbers handled by one request
type ChunkRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Valid reports whether the range lies within the element table
func (c ChunkRange) Valid() bool {
	return c.First >= 1 && c.First <= c.Last && c.Last <= element.Count
}

// Len returns the number of elements in the range
func (c ChunkRange) Len() int {
	if c.Last < c.First {
		return 0
	}
	return c.Last - c.First + 1
}

// Contains reports whether atomic number n is inside the range
func (c ChunkRange) Contains(n int) bool {
	return n >= c.First && n <= c.Last
}

func (c ChunkRange) String() string {
	return fmt.Sprintf("[%d-%d]", c.First, c.Last)
}
