// Package norm provides cached name normalization for go-argspec.
// Used by the resolver for option names, subcommand names, and raw token
// fragments that must compare equal under the configured case and
// underscore/hyphen rules.
package norm

import (
	"strings"
	"sync"
)

// Folder normalizes names according to a fixed policy and caches results.
// A Folder is safe for concurrent use; resolvers built from the same
// specification may be shared across parses.
type Folder struct {
	caseSensitive      bool
	convertUnderscores bool

	cache map[string]string
	mutex sync.RWMutex
}

// NewFolder creates a Folder for the given policy.
func NewFolder(caseSensitive, convertUnderscores bool) *Folder {
	return &Folder{
		caseSensitive:      caseSensitive,
		convertUnderscores: convertUnderscores,
		cache:              make(map[string]string, 32),
	}
}

// Fold returns the normalized form of s. Identical policies always produce
// identical results, so two names collide iff their folds are equal.
func (f *Folder) Fold(s string) string {
	if f.caseSensitive && !f.convertUnderscores {
		return s // identity policy, skip the cache entirely
	}

	// Fast path: read lock for the common repeated-name case.
	f.mutex.RLock()
	if folded, ok := f.cache[s]; ok {
		f.mutex.RUnlock()
		return folded
	}
	f.mutex.RUnlock()

	folded := f.fold(s)

	f.mutex.Lock()
	defer f.mutex.Unlock()
	// Double-check after acquiring the write lock.
	if cached, ok := f.cache[s]; ok {
		return cached
	}
	f.cache[s] = folded
	return folded
}

func (f *Folder) fold(s string) string {
	if !f.caseSensitive {
		s = strings.ToLower(s)
	}
	if f.convertUnderscores {
		s = strings.ReplaceAll(s, "_", "-")
	}
	return s
}

// Stats returns the number of cached names, for monitoring and tests.
func (f *Folder) Stats() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return len(f.cache)
}
