package localfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizePath applies the same treatment the teacher gives paths
// entering its vault: OS separators to forward slashes, non-breaking
// space collapse, repeated-slash collapse, and Unicode NFC. The local
// adapter's ReadDir returns entry names in this normalized form, so the
// local snapshot is keyed by it. The remote adapter returns names as the
// server sends them, unnormalized, so a name whose Unicode normalization
// differs between the two sides yields two different keys.
func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, " ", " ")
	path = strings.ReplaceAll(path, " ", " ")

	var b strings.Builder

	prevSlash := false

	for _, r := range path {
		if r == '/' {
			if prevSlash {
				continue
			}

			prevSlash = true
		} else {
			prevSlash = false
		}

		b.WriteRune(r)
	}

	return norm.NFC.String(strings.Trim(b.String(), "/"))
}

// resolve converts a root-relative path into an absolute path beneath
// root, rejecting traversal attempts. Grounded on the teacher's
// Vault.resolve, trimmed to the checks that make sense without a
// symlink-following vault write lock: null bytes, ".." segments, and a
// final prefix check.
func resolve(root, relPath string) (string, error) {
	if strings.ContainsRune(relPath, 0) {
		return "", fmt.Errorf("localfs: path contains null byte: %q", relPath)
	}

	rel := strings.ReplaceAll(relPath, "\\", "/")

	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", fmt.Errorf("localfs: path contains ..: %q", relPath)
		}
	}

	abs := filepath.Join(root, rel)
	if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("localfs: path traversal blocked: %q resolves outside root", relPath)
	}

	return abs, nil
}
