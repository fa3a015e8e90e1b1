package agg

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pamout/devlog/schema"
)

// Change markers used in the status column of a change table.
var changeMarkers = []string{"`~`", "`+`", "`-`"}

// ChangedFiles returns the paths listed in the change table rows of a document,
// in order of first appearance and without duplicates. A row is any line holding a
// change marker; its path is the third pipe-separated column without backticks.
func ChangedFiles(content string) []string {
	var out []string
	seen := make(map[string]bool)
	for line := range strings.SplitSeq(content, "\n") {
		if !hasChangeMarker(line) {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		p := strings.TrimSpace(strings.ReplaceAll(parts[2], "`", ""))
		if p == "" || p == "File" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func hasChangeMarker(line string) bool {
	for _, m := range changeMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// FileHistory counts, per path, the records that changed it. The topN most
// changed files are returned (ties by path), and every distinct path is
// classified with the file category table.
func FileHistory(records []schema.Record, table schema.CategoryTable, topN int) schema.FileHistory {
	byPath := make(map[string]*schema.FileChange)
	for _, r := range records {
		for _, p := range ChangedFiles(r.FullContent) {
			fc, ok := byPath[p]
			if !ok {
				fc = &schema.FileChange{Path: p, Category: table.ClassifyPath(p)}
				byPath[p] = fc
			}
			fc.Count++
			fc.Commits = append(fc.Commits, schema.FileCommit{
				Commit:    r.ShortCommit(),
				LogNumber: r.LogNumber,
				Date:      r.Date,
				Title:     r.Title,
			})
		}
	}

	history := schema.FileHistory{
		TotalFiles: len(byPath),
		Categories: make(map[schema.Category]int),
	}
	for _, c := range table.Categories() {
		history.Categories[c] = 0
	}

	all := make([]schema.FileChange, 0, len(byPath))
	for _, fc := range byPath {
		history.Categories[fc.Category]++
		all = append(all, *fc)
	}
	slices.SortFunc(all, func(a, b schema.FileChange) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	if topN > 0 && len(all) > topN {
		all = all[:topN]
	}
	history.Top = all
	return history
}
