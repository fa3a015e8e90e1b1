package core

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pamout/devlog/internal/contract"
)

// logRunHeader prints a concise, 2-line header naming the project and the source being read.
func logRunHeader(w io.Writer, cfg *contract.Config, source string) {
	projectName := filepath.Base(cfg.RootPath)
	if projectName == "" || projectName == "." || projectName == string(filepath.Separator) {
		projectName = "current"
	}

	// Line 1: the project
	_, _ = fmt.Fprintf(w, "🔎 Project: %s\n", projectName)

	// Line 2: where the records come from
	_, _ = fmt.Fprintf(w, "📄 Source: %s\n", relativeTo(cfg.RootPath, source))
}

// relativeTo shortens path relative to root when it lies inside it.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
