// Package shared holds small helpers used by more than one package.
package shared

import "strings"

// IsSQLiteConflictError reports whether err is a SQLite concurrency
// failure (SQLITE_BUSY or "database is locked"). The sqlite driver
// surfaces these as plain error strings, so we match on the text.
// Callers typically retry the statement after a short backoff.
func IsSQLiteConflictError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
