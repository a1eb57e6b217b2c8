// Package errors defines the origin-tagged error record the engine uses
// to surface failures to the host, per spec section 3 ("Error record")
// and section 7 ("Error handling design"). It plays the same role the
// teacher's internal/errors package plays for the Obsidian API client,
// widened from a flat set of sentinel errors to a structured record
// because this spec's error paths carry a path and an origin-specific
// numeric code that callers need to inspect.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Origin identifies which layer produced an error.
type Origin uint8

const (
	// OriginSession covers socket, resolve, handshake, and SSH session
	// failures (spec's "from-session").
	OriginSession Origin = iota
	// OriginSFTP covers well-known remote filesystem errors returned by
	// the SFTP subsystem (spec's "from-sftp-subsystem").
	OriginSFTP
	// OriginLocal covers OS calls against the local filesystem (spec's
	// "from-local-os").
	OriginLocal
	// OriginCustom covers everything raised by the engine itself rather
	// than by a lower layer (spec's "from-custom").
	OriginCustom
)

func (o Origin) String() string {
	switch o {
	case OriginSession:
		return "session"
	case OriginSFTP:
		return "sftp"
	case OriginLocal:
		return "local"
	case OriginCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Record is the error record from spec section 3: an origin tag, a
// numeric code in that origin's code space, an optional human-readable
// message, and the path the error refers to (if any).
type Record struct {
	Origin  Origin
	Code    int
	Message string
	Path    string
	Cause   error
}

func (r *Record) Error() string {
	if r.Path != "" {
		return fmt.Sprintf("%s error %d (%s): %s", r.Origin, r.Code, r.Path, r.Message)
	}

	return fmt.Sprintf("%s error %d: %s", r.Origin, r.Code, r.Message)
}

func (r *Record) Unwrap() error {
	return r.Cause
}

// New builds a Record, taking the message from cause (empty when cause
// is nil).
func New(origin Origin, code int, path string, cause error) *Record {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}

	return &Record{Origin: origin, Code: code, Message: msg, Path: path, Cause: cause}
}

// AssertUnreachable marks an out-of-model diff state reached during reconciliation
// (spec 7.6: "all three existence bits false"). It panics in debug builds and is a documented no-op in release builds, matching
// the source's "breakpoint in debug, unreachable in release" treatment;
// it is never surfaced through the error callback.
func AssertUnreachable(debug bool, where string) {
	if debug {
		panic("unreachable reconciliation state: " + where)
	}
}

// Transient wraps an error the caller should retry after a backoff
// rather than treat as terminal -- e.g. a dropped connection mid-walk,
// as opposed to "no such file". Grounded on the teacher's
// obsidian.TransientError/IsTransient pair, generalized from HTTP status
// classification to SSH/SFTP failure classification.
type Transient struct {
	Err error
}

func (e *Transient) Error() string { return e.Err.Error() }
func (e *Transient) Unwrap() error { return e.Err }

// IsTransient reports whether err (or any error in its chain) is a
// Transient, meaning the caller should retry after a backoff instead of
// treating it as terminal.
func IsTransient(err error) bool {
	var t *Transient
	return stderrors.As(err, &t)
}
