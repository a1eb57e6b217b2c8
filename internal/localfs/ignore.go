package localfs

import "github.com/bmatcuk/doublestar/v4"

// IgnoreFilter tests root-relative paths against a set of glob patterns.
// Grounded on the teacher's obsidian.SyncFilter.AllowPath toggle pattern,
// generalized from a fixed feature-toggle table to arbitrary doublestar
// globs since this spec has no notion of Obsidian's config subtree.
type IgnoreFilter struct {
	patterns []string
}

// NewIgnoreFilter builds a filter from doublestar glob patterns
// (e.g. "*.tmp", ".git/**"). Invalid patterns are dropped silently at
// match time by treating them as non-matching, since a malformed
// pattern must not stop the walk.
func NewIgnoreFilter(patterns []string) *IgnoreFilter {
	return &IgnoreFilter{patterns: patterns}
}

// Ignored reports whether relPath matches any configured pattern.
func (f *IgnoreFilter) Ignored(relPath string) bool {
	if f == nil {
		return false
	}

	for _, pattern := range f.patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}

	return false
}
