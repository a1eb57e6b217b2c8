//go:build !linux && !darwin

package localfs

import "os"

// extractStat returns ok=false on platforms without syscall.Stat_t, so
// Attr.Valid omits AttrOwner and the reconciler never diffs on it there,
// mirroring the teacher's ctime_other.go graceful-degradation approach.
func extractStat(_ os.FileInfo) (uid, gid uint32, atimeSec int64, ok bool) {
	return 0, 0, 0, false
}
