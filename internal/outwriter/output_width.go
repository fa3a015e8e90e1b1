package outwriter

import (
	"os"

	"github.com/pamout/devlog/internal/contract"
	"golang.org/x/term"
)

// Bounds of the title column in the logs table.
const (
	minTitleWidth = 15
	maxTitleWidth = 60
)

// GetMaxTableTitleWidth calculates the maximum width for record titles in table output
// based on terminal width and the fixed columns of the logs table.
func GetMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Log + Date + Type + Files + Added + Deleted + Size with borders/padding
	baseWidth := 75

	available := termWidth - baseWidth
	if available < minTitleWidth {
		return minTitleWidth
	}
	if available > maxTitleWidth {
		return maxTitleWidth
	}
	return available
}
