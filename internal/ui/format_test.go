package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(3*512*1024))
	assert.Equal(t, "2.0 GiB", FormatBytes(2*1024*1024*1024))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "", ProgressBar(0.5, 0))
	assert.Equal(t, strings.Repeat("□", 10), ProgressBar(0, 10))
	assert.Equal(t, strings.Repeat("▪", 10), ProgressBar(1, 10))
	assert.Equal(t, strings.Repeat("▪", 10), ProgressBar(2.5, 10)) // clamped

	half := ProgressBar(0.5, 10)
	assert.Equal(t, strings.Repeat("▪", 5)+strings.Repeat("□", 5), half)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5s", FormatDuration(5*time.Second))
	assert.Equal(t, "2m 03s", FormatDuration(123*time.Second))
	assert.Equal(t, "1h 01m 05s", FormatDuration(time.Hour+65*time.Second))
}

func TestTransferLine(t *testing.T) {
	line := TransferLine(512, 1024, 1, 2)
	assert.Contains(t, line, "50%")
	assert.Contains(t, line, "512 B / 1.0 KiB")
	assert.Contains(t, line, "1 of 2 files")
}
