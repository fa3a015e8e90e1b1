// Package extract turns development-log markdown documents into records.
// Extraction is best-effort: every field is matched independently and a field
// that cannot be found is simply left empty.
package extract

import (
	"cmp"
	"errors"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pamout/devlog/schema"
)

// ErrUnparseable is returned for documents that cannot be read as text at all.
var ErrUnparseable = errors.New("document is not parseable")

// footerMarker ends the details section.
const footerMarker = "🤖"

var (
	// Heading with a trailing localized type label, e.g. "# Development Log #12 - Add board (기능 추가)".
	titlePattern = regexp.MustCompile(`(?m)^#\s+Development Log\s+#(\d+)\s+-\s+(.+)\s+\(([^()\n]+)\)\s*$`)
	// Heading where the label is followed by more text; the first parenthesized group is the label.
	titleLazyPattern = regexp.MustCompile(`(?m)^#\s+Development Log\s+#(\d+)\s+-\s+(.+?)\s+\((.+?)\)`)
	// Heading without a label.
	titleBarePattern = regexp.MustCompile(`(?m)^#\s+Development Log\s+#(\d+)\s+-\s+(.+?)\s*$`)

	datePattern    = regexp.MustCompile(`\*\*Date\*\*:\s+(.+)`)
	authorPattern  = regexp.MustCompile(`\*\*Author\*\*:\s+(.+)`)
	commitPattern  = regexp.MustCompile("\\*\\*Commit\\*\\*:\\s+`(.+?)`")
	typePattern    = regexp.MustCompile(`\*\*Type\*\*:\s+(\w+)`)
	filesPattern   = regexp.MustCompile(`Files Changed[^|\n]*\|\s*(\d+)`)
	addedPattern   = regexp.MustCompile(`Lines Added[^|\n]*\|\s*\+?\s*(\d+)`)
	deletedPattern = regexp.MustCompile(`Lines Deleted[^|\n]*\|\s*-?\s*(\d+)`)
	numberPattern  = regexp.MustCompile(`^(\d+)-`)

	summaryHeading = regexp.MustCompile(`^#{2,3}\s+Summary\b`)
	detailsHeading = regexp.MustCompile(`^#{2,3}\s+Details\b`)
	bulletPattern  = regexp.MustCompile(`^[-*+]\s+`)
)

// ParseDocument extracts a record from one document. filename is the path of
// the document; only its base name is stored as Filename.
func ParseDocument(filename, content string) (schema.Record, error) {
	if !utf8.ValidString(content) || strings.TrimSpace(content) == "" {
		return schema.Record{}, ErrUnparseable
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")

	base := filepath.Base(filename)
	rec := schema.Record{
		Filename:    base,
		Filepath:    filepath.ToSlash(filename),
		FullContent: content,
	}

	parseHeading(&rec, content)

	rec.Date = firstGroup(datePattern, content)
	rec.Author = firstGroup(authorPattern, content)
	rec.Commit = firstGroup(commitPattern, content)
	rec.Type = firstGroup(typePattern, content)

	rec.Summary = parseSummary(content)
	rec.Details = parseDetails(content)

	rec.FilesChanged = firstInt(filesPattern, content)
	rec.LinesAdded = firstInt(addedPattern, content)
	rec.LinesDeleted = firstInt(deletedPattern, content)

	if rec.Date != "" {
		if t, ok := schema.ParseLogDate(rec.Date); ok {
			rec.Timestamp = t.Format(schema.ISOLayout)
		} else {
			rec.Timestamp = rec.Date
		}
	}

	if m := numberPattern.FindStringSubmatch(path.Base(rec.Filepath)); m != nil {
		rec.Number = m[1]
	}

	return rec, nil
}

// parseHeading fills LogNumber, Title and TypeLabel from the first matching heading form.
func parseHeading(rec *schema.Record, content string) {
	if m := titlePattern.FindStringSubmatch(content); m != nil {
		rec.LogNumber, rec.Title, rec.TypeLabel = m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
		return
	}
	if m := titleLazyPattern.FindStringSubmatch(content); m != nil {
		rec.LogNumber, rec.Title, rec.TypeLabel = m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
		return
	}
	if m := titleBarePattern.FindStringSubmatch(content); m != nil {
		rec.LogNumber, rec.Title = m[1], strings.TrimSpace(m[2])
	}
}

// parseSummary returns the first non-empty, non-heading line of the summary section.
func parseSummary(content string) string {
	for _, line := range sectionLines(content, summaryHeading, false) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

// parseDetails returns the bullet items of the details section with their markers stripped.
func parseDetails(content string) []string {
	var details []string
	for _, line := range sectionLines(content, detailsHeading, true) {
		line = strings.TrimSpace(line)
		loc := bulletPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if item := strings.TrimSpace(line[loc[1]:]); item != "" {
			details = append(details, item)
		}
	}
	return details
}

// sectionLines returns the lines after the first heading matching start, up to
// the next line beginning with "##". With stopAtFooter the footer marker also ends it.
func sectionLines(content string, start *regexp.Regexp, stopAtFooter bool) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !start.MatchString(strings.TrimSpace(line)) {
			continue
		}
		var out []string
		for _, next := range lines[i+1:] {
			if strings.HasPrefix(next, "##") {
				break
			}
			if stopAtFooter && strings.Contains(next, footerMarker) {
				break
			}
			out = append(out, next)
		}
		return out
	}
	return nil
}

func firstGroup(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func firstInt(re *regexp.Regexp, content string) int {
	s := firstGroup(re, content)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SortRecords returns a copy of records stably sorted by numeric log number, highest first.
// Missing or non-numeric log numbers sort as 0.
func SortRecords(records []schema.Record) []schema.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b schema.Record) int {
		return cmp.Compare(b.LogNumberInt(), a.LogNumberInt())
	})
	return out
}
