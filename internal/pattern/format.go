package pattern

import (
	"fmt"
	"strings"
)

const (
	headerDryRun  = "Preview of changes (dry run mode):\n\n"
	headerApplied = "Applied changes:\n\n"
	headerCount   = "Match counts:\n\n"

	noMatches = "No matches found"
	noChanges = "No changes made"

	// diffMarker frames each hunk header in ast-grep's diff output: "@@ -1,2 +1,2 @@".
	diffMarker = "@@"
)

// FormatOutput turns raw ast-grep stdout into the text returned to the caller.
// It is a pure function of its inputs.
func FormatOutput(output string, req *SearchRequest) string {
	mode := req.EffectiveMode()

	if strings.TrimSpace(output) == "" {
		if mode == ModeReplace {
			return noChanges
		}
		return noMatches
	}

	var b strings.Builder
	switch mode {
	case ModeReplace:
		if req.IsDryRun() {
			b.WriteString(headerDryRun)
		} else {
			b.WriteString(headerApplied)
		}
	case ModeCount:
		b.WriteString(headerCount)
	}
	b.WriteString(output)

	if mode == ModeReplace {
		if blocks := CountDiffBlocks(output); blocks > 0 {
			b.WriteString("\n\n")
			if req.IsDryRun() {
				fmt.Fprintf(&b, "Would apply changes in %d location(s). Set dryRun to false to write them.", blocks)
			} else {
				fmt.Fprintf(&b, "Applied changes in %d location(s).", blocks)
			}
		}
	}

	return b.String()
}

// CountDiffBlocks counts diff hunks; every hunk header carries two markers.
func CountDiffBlocks(output string) int {
	return strings.Count(output, diffMarker) / 2
}

// truncationNotice is appended when the engine printed more than the ceiling.
func truncationNotice(limit int64) string {
	return fmt.Sprintf("\n\n[output truncated at %d bytes]", limit)
}
