package model

import "strings"

// SnapKey computes the snapshot key for a directory by stripping the
// configured root prefix from its absolute path, per spec section 4.4.1:
//
//	snap_key(root, full) = (full with leading root removed); "" -> "/"
//
// root and full must already use the same separator convention. The
// walk does not call SnapKey: it derives directory keys with ChildKey,
// which gives children of the root no leading separator ("sub", where
// SnapKey yields "/sub").
func SnapKey(root, full string) string {
	rel := strings.TrimPrefix(full, root)
	if rel == "" {
		return RootKey
	}

	return rel
}

// ChildKey joins a parent directory's snapshot key with a child's
// basename, matching "a child directory's snapshot key equals its
// parent's key joined by the path separator with the child's basename",
// except that a child of the root gets its bare basename as its key.
func ChildKey(sep, parentKey, childName string) string {
	if parentKey == RootKey {
		return childName
	}

	return strings.TrimSuffix(parentKey, sep) + sep + childName
}
