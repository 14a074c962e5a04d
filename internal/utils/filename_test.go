package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFilename_StripsTimestampPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "script.py", FormatFilename("2024-05-01_12-30-45_script.py"))
}

func TestFormatFilename_NoPrefixPassthrough(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "script.py", FormatFilename("script.py"))
	assert.Equal(t, "", FormatFilename(""))
}

func TestFormatFilename_Idempotent(t *testing.T) {
	t.Parallel()

	once := FormatFilename("2024-05-01_12-30-45_script.py")
	assert.Equal(t, once, FormatFilename(once))
}

func TestFormatFilename_PrefixMidName(t *testing.T) {
	t.Parallel()

	// Every occurrence of the timestamp pattern is removed, not just a
	// leading one.
	assert.Equal(t, "copy_of_script.py", FormatFilename("copy_of_2024-05-01_12-30-45_script.py"))
}

func TestTimestampedName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "2024-05-01_12-30-45_script.py", TimestampedName("script.py", now))
}

func TestUserFilePath(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	path := UserFilePath("abc-123", "script.py", now)
	assert.Equal(t, "files/user_abc-123/2024-05-01_12-30-45_script.py", path)
}

func TestTimestampedNameRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "script.py", FormatFilename(TimestampedName("script.py", now)))
}
