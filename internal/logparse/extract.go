// Package logparse extracts contiguous ERROR/WARNING blocks from raw
// newline-delimited log streams. Continuation lines (stack traces) that
// follow an error entry before the next recognized entry start are kept with
// the entry they belong to.
package logparse

import (
	"regexp"
	"strings"
)

// DefaultMaxBlocks bounds the report window: only the most recent blocks are
// returned, in original order.
const DefaultMaxBlocks = 10

// NoErrorsMessage is returned when the input contains no qualifying blocks.
const NoErrorsMessage = "No errors or warnings were found!"

const bannerWidth = 40

// entryStart recognizes the beginning of a log entry: a source token, an
// RFC3339 timestamp with fractional seconds, and a level prefix.
var entryStart = regexp.MustCompile(`^\S+\s+\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z\s+(INFO|ERROR|WARNING):`)

// Extractor collects ERROR/WARNING blocks from log lines.
type Extractor struct {
	// EntryStart classifies a line as the start of a log entry. Defaults to
	// the app-platform entry prefix.
	EntryStart *regexp.Regexp

	// MaxBlocks bounds the window of returned blocks. Defaults to
	// DefaultMaxBlocks.
	MaxBlocks int
}

func (e Extractor) entryPattern() *regexp.Regexp {
	if e.EntryStart != nil {
		return e.EntryStart
	}
	return entryStart
}

func (e Extractor) maxBlocks() int {
	if e.MaxBlocks > 0 {
		return e.MaxBlocks
	}
	return DefaultMaxBlocks
}

// Blocks walks the lines once and returns the last MaxBlocks ERROR/WARNING
// blocks. A block opens at an ERROR/WARNING entry-start line and absorbs
// continuation lines until the next entry start that is not ERROR/WARNING.
// A block still open at end of input is kept.
func (e Extractor) Blocks(lines []string) []string {
	pattern := e.entryPattern()

	var blocks []string
	var current []string
	capturing := false

	for _, line := range lines {
		isEntryStart := pattern.MatchString(line)
		isErrorOrWarning := strings.Contains(line, "ERROR") || strings.Contains(line, "WARNING")

		if isEntryStart && isErrorOrWarning {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
			}
			capturing = true
		}

		if capturing && isEntryStart && !isErrorOrWarning && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
			capturing = false
		}

		if capturing {
			current = append(current, line)
		}
	}

	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	if max := e.maxBlocks(); len(blocks) > max {
		blocks = blocks[len(blocks)-max:]
	}
	return blocks
}

// Report renders the extracted blocks between separator banners, or the
// NoErrorsMessage sentinel when nothing qualified.
func (e Extractor) Report(lines []string) string {
	blocks := e.Blocks(lines)
	if len(blocks) == 0 {
		return NoErrorsMessage
	}

	banner := strings.Repeat("-", bannerWidth)
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(banner)
		b.WriteString("\n")
		b.WriteString(block)
		b.WriteString("\n")
		b.WriteString(banner)
		b.WriteString("\n")
	}
	return b.String()
}
