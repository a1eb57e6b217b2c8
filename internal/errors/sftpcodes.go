package errors

import "github.com/pkg/sftp"

// Well-known SFTP status codes, per the values defined by the
// draft-ietf-secsh-filexfer wire protocol that pkg/sftp implements.
// Spelled out as literals here (rather than referencing pkg/sftp's own
// status constants) because the numeric values are the wire contract --
// this table needs to be correct even if a future pkg/sftp release
// renames or drops its exported aliases for them.
const (
	codeOK                = 0
	codeEOF               = 1
	codeNoSuchFile        = 2
	codePermissionDenied  = 3
	codeFailure           = 4
	codeBadMessage        = 5
	codeNoConnection      = 6
	codeConnectionLost    = 7
	codeOPUnsupported     = 8
)

// sftpCodeNames maps well-known SFTP status codes to human-readable
// names, per spec section 7.4 ("Enumerated by code; the engine maps the
// code to a human-readable name via a static table").
var sftpCodeNames = map[uint32]string{
	codeOK:               "ok",
	codeEOF:              "eof",
	codeNoSuchFile:       "no such file",
	codePermissionDenied: "permission denied",
	codeFailure:          "failure",
	codeBadMessage:       "bad message",
	codeNoConnection:     "no connection",
	codeConnectionLost:   "connection lost",
	codeOPUnsupported:    "operation unsupported",
}

// SFTPCodeName returns the static human-readable name for an SFTP status
// code, or "unknown sftp error" if the code is not in the table.
func SFTPCodeName(code uint32) string {
	if name, ok := sftpCodeNames[code]; ok {
		return name
	}

	return "unknown sftp error"
}

// FromStatus converts an *sftp.StatusError into a Record, preferring the
// library's own message and falling back to SFTPCodeName when it has
// none.
func FromStatus(path string, se *sftp.StatusError) *Record {
	msg := se.Error()
	if msg == "" {
		msg = SFTPCodeName(se.Code)
	}

	return &Record{Origin: OriginSFTP, Code: int(se.Code), Message: msg, Path: path, Cause: se}
}

// IsNoSuchFile reports whether err is an SFTP "no such file" status.
func IsNoSuchFile(err error) bool {
	se, ok := err.(*sftp.StatusError)
	return ok && se.Code == codeNoSuchFile
}
