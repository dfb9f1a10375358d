// Package element holds the static table of the 118 known chemical elements.
package element

import "strings"

// Count is the number of known elements
const Count = 118

// Identity identifies a single element
type Identity struct {
	AtomicNumber int    `json:"atomicNumber" yaml:"atomic_number"`
	Symbol       string `json:"symbol" yaml:"symbol"`
	Name         string `json:"name" yaml:"name"`
}

// ByAtomicNumber returns the element with atomic number n.
// ok is false for n outside 1..Count.
func ByAtomicNumber(n int) (Identity, bool) {
	if n < 1 || n > Count {
		return Identity{}, false
	}
	return table[n-1], true
}

// All returns a copy of the full table ordered by atomic number
func All() []Identity {
	out := make([]Identity, Count)
	copy(out, table[:])
	return out
}

// MatchesName reports whether name refers to the element with atomic number n.
// Symbols and the American spellings of a few names are accepted.
func MatchesName(n int, name string) bool {
	id, ok := ByAtomicNumber(n)
	if !ok {
		return false
	}
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, id.Name) || strings.EqualFold(name, id.Symbol) {
		return true
	}
	if alt, ok := alternateNames[n]; ok {
		return strings.EqualFold(name, alt)
	}
	return false
}

var alternateNames = map[int]string{
	13: "Aluminum",
	16: "Sulphur",
	55: "Cesium",
}
