// Package cache memoizes query results for the lifetime of one process.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ppiankov/elementa/internal/model"
)

// Cache memoizes results by query mode. Implementations hand out copies,
// so callers may modify what they get without affecting later hits.
type Cache interface {
	Get(mode model.Mode) (model.ResultSet, bool)
	Set(mode model.Mode, rs model.ResultSet)
}

// Key generates the cache key for a mode and its parameters
func Key(mode model.Mode) string {
	hash := sha256.Sum256([]byte(model.ModeKey(mode)))
	return "elementa:v1:" + hex.EncodeToString(hash[:])
}
