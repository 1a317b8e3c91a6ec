package L

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	t.Run("ShortInputUnchanged", func(t *testing.T) {
		assert.Equal(t, "notes", TruncateString("notes", 10, TRUNC_RIGHT))
	})
	t.Run("Right", func(t *testing.T) {
		assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7, TRUNC_RIGHT))
	})
	t.Run("Left", func(t *testing.T) {
		assert.Equal(t, "...ghij", TruncateString("abcdefghij", 7, TRUNC_LEFT))
	})
	t.Run("Center", func(t *testing.T) {
		assert.Equal(t, "ab...ij", TruncateString("abcdefghij", 7, TRUNC_CENTER))
	})
	t.Run("CountsRunes", func(t *testing.T) {
		assert.Equal(t, "äöü...", TruncateString("äöüßéèê", 6, TRUNC_RIGHT))
	})
	t.Run("TinyWidths", func(t *testing.T) {
		assert.Equal(t, "..", TruncateString("abcdefghij", 2, TRUNC_RIGHT))
		assert.Equal(t, "", TruncateString("abcdefghij", 0, TRUNC_RIGHT))
	})
}

func TestHumanReadable(t *testing.T) {
	t.Run("Minutes", func(t *testing.T) {
		assert.Equal(t, "0m", HumanReadableMinutes(0))
		assert.Equal(t, "45m", HumanReadableMinutes(45))
		assert.Equal(t, "2h", HumanReadableMinutes(120))
		assert.Equal(t, "7h 30m", HumanReadableMinutes(450))
		assert.Equal(t, "-1h 5m", HumanReadableMinutes(-65))
	})
	t.Run("Bytes", func(t *testing.T) {
		assert.Equal(t, "0 B", HumanReadableBytes(0, 1))
		assert.Equal(t, "5 B", HumanReadableBytes(5, 1))
		assert.Equal(t, "1.5 KB", HumanReadableBytes(1536, 1))
		assert.Equal(t, "200.0 MB", HumanReadableBytes(200*1024*1024, 1))
	})
}
