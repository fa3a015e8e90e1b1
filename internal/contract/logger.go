package contract

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLogLevel is the level used when none is configured.
const DefaultLogLevel = "info"

// Logger is the process-wide structured logger. It writes to stderr so that
// stdout stays reserved for command output and the MCP protocol.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "devlog",
	Level:  log.InfoLevel,
})

// ConfigureLogger sets the level of the process-wide logger.
func ConfigureLogger(level string) error {
	if strings.TrimSpace(level) == "" {
		level = DefaultLogLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}
