package contract

import (
	"fmt"
	"strings"

	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultRecordCategories classifies a whole document by its content.
// Matching is case-sensitive.
func DefaultRecordCategories() schema.CategoryTable {
	return schema.CategoryTable{
		{Category: schema.FrontendCategory, Patterns: []string{"frontend/", "src/app/", "src/components/", ".tsx", ".jsx"}},
		{Category: schema.BackendCategory, Patterns: []string{"server/", "app/api/", "app/models/", "app/services/", ".py"}},
		{Category: schema.DocsCategory, Patterns: []string{"docs/", ".md", "README"}},
		{Category: schema.ConfigCategory, Patterns: []string{".yml", ".yaml", ".json", "docker-compose", ".env", "Dockerfile"}},
	}
}

// DefaultFileCategories classifies a single changed path.
// Patterns are lower-case and matched against the lower-cased path.
func DefaultFileCategories() schema.CategoryTable {
	return schema.CategoryTable{
		{Category: schema.FrontendCategory, Patterns: []string{"frontend/", "src/app/", "src/components/", ".tsx", ".jsx", "styles/"}},
		{Category: schema.BackendCategory, Patterns: []string{"server/", "app/", ".py", "api/"}},
		{Category: schema.DocsCategory, Patterns: []string{"docs/", ".md", "readme"}},
		{Category: schema.ConfigCategory, Patterns: []string{".yml", ".yaml", ".json", ".toml", "config", "docker"}},
	}
}

// CategoryFile is the on-disk layout of a standalone category file.
type CategoryFile struct {
	Record schema.CategoryTable `yaml:"record"`
	File   schema.CategoryTable `yaml:"file"`
}

// LoadCategoryFile reads record and file category tables from a YAML file.
// Tables left empty in the file are returned empty so callers can keep their defaults.
func LoadCategoryFile(fs afero.Fs, path string) (CategoryFile, error) {
	var out CategoryFile
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return out, fmt.Errorf("failed to read category file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to parse category file %s: %w", path, err)
	}
	if err := validateCategoryTable(out.Record); err != nil {
		return out, fmt.Errorf("invalid record categories in %s: %w", path, err)
	}
	if err := validateCategoryTable(out.File); err != nil {
		return out, fmt.Errorf("invalid file categories in %s: %w", path, err)
	}
	out.File = lowerPatterns(out.File)
	return out, nil
}

// validateCategoryTable rejects rules without a name or without patterns.
func validateCategoryTable(table schema.CategoryTable) error {
	for i, rule := range table {
		if strings.TrimSpace(string(rule.Category)) == "" {
			return fmt.Errorf("rule %d has no category", i)
		}
		if len(rule.Patterns) == 0 {
			return fmt.Errorf("rule %q has no patterns", rule.Category)
		}
	}
	return nil
}

// lowerPatterns lower-cases every pattern since file paths are matched lower-cased.
func lowerPatterns(table schema.CategoryTable) schema.CategoryTable {
	out := make(schema.CategoryTable, len(table))
	for i, rule := range table {
		patterns := make([]string, len(rule.Patterns))
		for j, p := range rule.Patterns {
			patterns[j] = strings.ToLower(p)
		}
		out[i] = schema.CategoryRule{Category: rule.Category, Patterns: patterns}
	}
	return out
}
