// Package schema has the models and shared constants for all parts of devlog.
package schema

import (
	"strconv"
	"time"
)

// Record is one parsed development-log document.
// Every field except Filename and FullContent may be absent; numeric fields default to zero.
type Record struct {
	LogNumber    string   `json:"log_number,omitempty"`    // Identity and sort key
	Title        string   `json:"title,omitempty"`         // Free text from the heading
	TypeLabel    string   `json:"type_label,omitempty"`    // Localized label from the heading parentheses
	Date         string   `json:"date,omitempty"`          // Raw date, expected YYYY-MM-DD HH:MM:SS
	Timestamp    string   `json:"timestamp,omitempty"`     // ISO-8601 when Date parses, raw Date otherwise
	Author       string   `json:"author,omitempty"`        // Commit author
	Commit       string   `json:"commit,omitempty"`        // Full commit hash
	Type         string   `json:"type,omitempty"`          // feat, fix, docs, ...
	Summary      string   `json:"summary,omitempty"`       // First line of the summary section
	Details      []string `json:"details,omitempty"`       // Bullet items of the details section
	FilesChanged int      `json:"files_changed,omitempty"` // Files changed by the commit
	LinesAdded   int      `json:"lines_added,omitempty"`   // Lines added by the commit
	LinesDeleted int      `json:"lines_deleted,omitempty"` // Lines deleted by the commit
	Number       string   `json:"number,omitempty"`        // Numeric filename prefix
	Filename     string   `json:"filename"`                // Base name of the source document
	Filepath     string   `json:"filepath,omitempty"`      // Path of the source document
	FullContent  string   `json:"full_content"`            // Entire document text
}

// ShortCommitLen is the number of hash characters shown for a commit.
const ShortCommitLen = 7

// ShortCommit returns the abbreviated commit hash, or "N/A" when absent.
func (r Record) ShortCommit() string {
	if r.Commit == "" {
		return "N/A"
	}
	if len(r.Commit) <= ShortCommitLen {
		return r.Commit
	}
	return r.Commit[:ShortCommitLen]
}

// LogNumberInt returns the numeric log number, treating missing or non-numeric values as 0.
func (r Record) LogNumberInt() int {
	n, err := strconv.Atoi(r.LogNumber)
	if err != nil {
		return 0
	}
	return n
}

// TotalLines returns lines added plus lines deleted.
func (r Record) TotalLines() int {
	return r.LinesAdded + r.LinesDeleted
}

// TypeOrUnknown returns the record type, or UnknownType when absent.
func (r Record) TypeOrUnknown() string {
	if r.Type == "" {
		return UnknownType
	}
	return r.Type
}

// Statistics is the set of aggregate counts over all records.
type Statistics struct {
	TotalLogs         int              `json:"total_logs"`
	TotalFilesChanged int              `json:"total_files_changed"`
	TotalLinesAdded   int              `json:"total_lines_added"`
	TotalLinesDeleted int              `json:"total_lines_deleted"`
	ByType            map[string]int   `json:"by_type"`
	Categories        map[Category]int `json:"categories"`
}

// Document is the serialized artifact consumed by every renderer.
type Document struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Statistics  Statistics `json:"statistics"`
	Logs        []Record   `json:"logs"`
}
