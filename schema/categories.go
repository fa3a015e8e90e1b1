package schema

import "strings"

// CategoryRule maps one category to the substrings that select it.
type CategoryRule struct {
	Category Category `yaml:"category" mapstructure:"category" json:"category"`
	Patterns []string `yaml:"patterns" mapstructure:"patterns" json:"patterns"`
}

// CategoryTable is an ordered list of rules. The first rule with a matching
// pattern wins, so order is significant.
type CategoryTable []CategoryRule

// Classify returns the category of the first rule with any pattern contained
// in text, or OtherCategory when none match.
func (t CategoryTable) Classify(text string) Category {
	for _, rule := range t {
		for _, p := range rule.Patterns {
			if p != "" && strings.Contains(text, p) {
				return rule.Category
			}
		}
	}
	return OtherCategory
}

// ClassifyPath classifies a file path case-insensitively.
func (t CategoryTable) ClassifyPath(path string) Category {
	return t.Classify(strings.ToLower(path))
}

// Categories returns every category named by the table plus OtherCategory,
// with the built-in categories first.
func (t CategoryTable) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, c := range AllCategories {
		seen[c] = true
		out = append(out, c)
	}
	for _, rule := range t {
		if !seen[rule.Category] {
			seen[rule.Category] = true
			out = append(out, rule.Category)
		}
	}
	return out
}
