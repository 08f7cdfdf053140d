// Package ui holds the terminal-facing helpers for the ferry CLI: value
// formatting, the transfer progress line, and interactive prompts.
package ui

import (
	"fmt"
	"strings"
	"time"
)

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatCount formats an integer with comma separators.
func FormatCount(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ProgressBar renders a progress bar of the given width using ▪/□ characters.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	var b strings.Builder
	for i := 0; i < filled; i++ {
		b.WriteRune('▪') // ▪ (filled)
	}
	for i := 0; i < width-filled; i++ {
		b.WriteRune('□') // □ (empty)
	}
	return b.String()
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// TransferLine renders the one-line progress summary printed after each
// transferred file.
func TransferLine(processedBytes, totalBytes, processedFiles, totalFiles uint64) string {
	pct := 0.0
	if totalBytes > 0 {
		pct = float64(processedBytes) / float64(totalBytes)
	}
	return fmt.Sprintf(
		"%s %3.0f%%  %s / %s  (%s of %s files)",
		ProgressBar(pct, 20),
		pct*100,
		FormatBytes(processedBytes),
		FormatBytes(totalBytes),
		FormatCount(processedFiles),
		FormatCount(totalFiles),
	)
}
