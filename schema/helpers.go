package schema

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TypeInfo describes how a record type is displayed.
type TypeInfo struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	LocalLabel string `json:"local_label"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
}

// Fallback display values for unknown types.
const (
	FallbackTypeColor = "#64748b"
	FallbackTypeIcon  = "LOG"
)

// knownTypeOrder lists the known type codes in display order.
var knownTypeOrder = []string{"feat", "fix", "docs", "refactor", "test", "chore", "ci", "setup"}

var typeTable = map[string]TypeInfo{
	"feat":     {Code: "feat", Label: "Features", LocalLabel: "기능 추가", Color: "#10b981", Icon: "NEW"},
	"fix":      {Code: "fix", Label: "Fixes", LocalLabel: "버그 수정", Color: "#ef4444", Icon: "FIX"},
	"docs":     {Code: "docs", Label: "Docs", LocalLabel: "문서", Color: "#3b82f6", Icon: "DOC"},
	"refactor": {Code: "refactor", Label: "Refactor", LocalLabel: "리팩토링", Color: "#8b5cf6", Icon: "REF"},
	"test":     {Code: "test", Label: "Tests", LocalLabel: "테스트", Color: "#f59e0b", Icon: "TEST"},
	"chore":    {Code: "chore", Label: "Chore", LocalLabel: "기타", Color: "#6b7280", Icon: "CHORE"},
	"ci":       {Code: "ci", Label: "CI/CD", LocalLabel: "CI/CD", Color: "#06b6d4", Icon: "CI"},
	"setup":    {Code: "setup", Label: "Setup", LocalLabel: "설정", Color: "#84cc16", Icon: "SETUP"},
}

var titleCaser = cases.Title(language.English)

// LookupType returns display info for a type code.
// Unknown codes get a title-cased label and the fallback color and icon.
func LookupType(code string) TypeInfo {
	if info, ok := typeTable[code]; ok {
		return info
	}
	return TypeInfo{
		Code:       code,
		Label:      titleCaser.String(code),
		LocalLabel: code,
		Color:      FallbackTypeColor,
		Icon:       FallbackTypeIcon,
	}
}

// KnownTypes returns the known type codes in display order.
func KnownTypes() []string {
	out := make([]string, len(knownTypeOrder))
	copy(out, knownTypeOrder)
	return out
}

// IsKnownType reports whether the code has a dedicated entry in the type table.
func IsKnownType(code string) bool {
	_, ok := typeTable[code]
	return ok
}

// SizeBucketFor classifies a commit by total lines changed:
// below 50 is small, below 200 medium, below 500 large, anything else xlarge.
func SizeBucketFor(lines int) SizeBucket {
	switch {
	case lines < 50:
		return SmallSize
	case lines < 200:
		return MediumSize
	case lines < 500:
		return LargeSize
	default:
		return XLargeSize
	}
}

// Date layouts. Only LogDateLayout is accepted as a usable Date value; the
// short layout is for display.
const (
	LogDateLayout      = "2006-01-02 15:04:05"
	LogDateShortLayout = "2006-01-02 15:04"
	DayLayout          = "2006-01-02"
	ISOLayout          = "2006-01-02T15:04:05"
)

// ParseLogDate parses a raw Date value in LogDateLayout. Anything else is unusable.
func ParseLogDate(s string) (time.Time, bool) {
	t, err := time.Parse(LogDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ClampInt32 narrows a count to the int32 columns of the run store, saturating
// at the int32 bounds.
func ClampInt32(n int) int32 {
	return int32(max(min(n, math.MaxInt32), math.MinInt32))
}
