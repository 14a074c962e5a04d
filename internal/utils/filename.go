package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var timestampPrefix = regexp.MustCompile(`\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}_`)

// FormatFilename strips the injected timestamp prefix from a stored
// filename. Names without the prefix pass through unchanged, so the
// operation is idempotent.
func FormatFilename(name string) string {
	match := timestampPrefix.FindString(name)
	if match == "" {
		return name
	}
	return strings.ReplaceAll(name, match, "")
}

// TimestampedName prefixes a filename with the current wall clock, the
// same prefix FormatFilename strips.
func TimestampedName(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s", now.Format("2006-01-02_15-04-05"), name)
}

// UserFilePath builds the storage path for a user's upload.
func UserFilePath(userID, filename string, now time.Time) string {
	return fmt.Sprintf("files/user_%s/%s", userID, TimestampedName(filename, now))
}
