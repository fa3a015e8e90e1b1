package contract

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

// Default values for configuration.
const (
	DefaultInputDir  = "docs/dev-log"
	DefaultOutputDir = "docs/html"
	DefaultDataFile  = "data/dev-logs.json"
	DefaultPrecision = 1
	DefaultTopFiles  = 20
	MaxTopFiles      = 1000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a devlog run.
// This struct is the "final, validated" config.
type Config struct {
	RootPath   string // Absolute project root
	InputDir   string // Absolute directory holding the markdown documents
	OutputDir  string // Absolute directory receiving the HTML pages
	DataFile   string // Absolute path of the JSON document
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	TopFiles   int
	SkipRender bool
	Pages      []schema.Page
	UseColors  bool
	LogLevel   string

	RecordCategories schema.CategoryTable
	FileCategories   schema.CategoryTable

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// CategoriesRawInput holds category tables from the YAML config file.
type CategoriesRawInput struct {
	Record []schema.CategoryRule `mapstructure:"record"`
	File   []schema.CategoryRule `mapstructure:"file"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RootPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	InputDir         string `mapstructure:"input-dir"`
	OutputDir        string `mapstructure:"output-dir"`
	DataFile         string `mapstructure:"data-file"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	LogLevel         string `mapstructure:"log-level"`
	CategoriesFile   string `mapstructure:"categories-file"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from buildCmd and renderCmd flags ---
	SkipRender bool   `mapstructure:"skip-render"`
	Page       string `mapstructure:"page"`

	// --- Fields from statsCmd flags ---
	TopFiles int `mapstructure:"top-files"`

	// --- Category tables from config file ---
	Categories CategoriesRawInput `mapstructure:"categories"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Pages != nil {
		clone.Pages = slices.Clone(c.Pages)
	}
	clone.RecordCategories = cloneTable(c.RecordCategories)
	clone.FileCategories = cloneTable(c.FileCategories)
	return &clone
}

func cloneTable(t schema.CategoryTable) schema.CategoryTable {
	if t == nil {
		return nil
	}
	out := make(schema.CategoryTable, len(t))
	for i, rule := range t {
		out[i] = schema.CategoryRule{Category: rule.Category, Patterns: slices.Clone(rule.Patterns)}
	}
	return out
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, fs afero.Fs, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolvePaths(cfg, fs, input); err != nil {
		return err
	}
	if err := processPages(cfg, input); err != nil {
		return err
	}
	if err := processCategories(cfg, fs, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseHistoryBackend converts a raw backend string, treating empty as NoneBackend.
func ParseHistoryBackend(raw string) (schema.DatabaseBackend, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(raw))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseHistoryBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SkipRender = input.SkipRender
	cfg.LogLevel = input.LogLevel

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}

	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4")
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width must be zero or positive")
	}

	cfg.TopFiles = input.TopFiles
	if cfg.TopFiles == 0 {
		cfg.TopFiles = DefaultTopFiles
	}
	if cfg.TopFiles < 1 || cfg.TopFiles > MaxTopFiles {
		return fmt.Errorf("top-files must be between 1 and %d", MaxTopFiles)
	}

	useColors := true
	if input.Color != "" {
		parsed, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid color value: %w", err)
		}
		useColors = parsed
	}
	cfg.UseColors = useColors

	return nil
}

// resolvePaths turns the root and its relative directories into absolute paths.
func resolvePaths(cfg *Config, fs afero.Fs, input *ConfigRawInput) error {
	rootStr := input.RootPathStr
	if rootStr == "" {
		rootStr = "."
	}
	root, err := filepath.Abs(rootStr)
	if err != nil {
		return fmt.Errorf("failed to resolve project root %s: %w", rootStr, err)
	}
	ok, err := afero.DirExists(fs, root)
	if err != nil {
		return fmt.Errorf("failed to inspect project root %s: %w", root, err)
	}
	if !ok {
		return fmt.Errorf("project root %s is not a directory", root)
	}
	cfg.RootPath = root

	cfg.InputDir = resolveUnder(root, defaultString(input.InputDir, DefaultInputDir))
	cfg.OutputDir = resolveUnder(root, defaultString(input.OutputDir, DefaultOutputDir))
	cfg.DataFile = resolveUnder(cfg.OutputDir, defaultString(input.DataFile, DefaultDataFile))
	return nil
}

// processPages parses the comma-separated page list; empty means all pages.
func processPages(cfg *Config, input *ConfigRawInput) error {
	cfg.Pages = nil
	for raw := range strings.SplitSeq(input.Page, ",") {
		name := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(raw)), ".html")
		if name == "" {
			continue
		}
		page := schema.Page(name)
		if _, ok := schema.ValidPages[page]; !ok {
			return fmt.Errorf("invalid page '%s'", raw)
		}
		if !slices.Contains(cfg.Pages, page) {
			cfg.Pages = append(cfg.Pages, page)
		}
	}
	return nil
}

// processCategories applies defaults, then config file tables, then a standalone category file.
func processCategories(cfg *Config, fs afero.Fs, input *ConfigRawInput) error {
	cfg.RecordCategories = DefaultRecordCategories()
	cfg.FileCategories = DefaultFileCategories()

	if len(input.Categories.Record) > 0 {
		if err := validateCategoryTable(input.Categories.Record); err != nil {
			return fmt.Errorf("invalid record categories: %w", err)
		}
		cfg.RecordCategories = cloneTable(input.Categories.Record)
	}
	if len(input.Categories.File) > 0 {
		if err := validateCategoryTable(input.Categories.File); err != nil {
			return fmt.Errorf("invalid file categories: %w", err)
		}
		cfg.FileCategories = lowerPatterns(input.Categories.File)
	}

	if input.CategoriesFile == "" {
		return nil
	}
	loaded, err := LoadCategoryFile(fs, resolveUnder(cfg.RootPath, input.CategoriesFile))
	if err != nil {
		return err
	}
	if len(loaded.Record) > 0 {
		cfg.RecordCategories = loaded.Record
	}
	if len(loaded.File) > 0 {
		cfg.FileCategories = loaded.File
	}
	return nil
}

func resolveUnder(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// RebaseRoot moves cfg to another project root. Paths that lived under the old
// root keep their relative location; paths outside it are left as they are.
func RebaseRoot(cfg *Config, fs afero.Fs, rootStr string) error {
	root, err := filepath.Abs(rootStr)
	if err != nil {
		return fmt.Errorf("failed to resolve project root %s: %w", rootStr, err)
	}
	ok, err := afero.DirExists(fs, root)
	if err != nil {
		return fmt.Errorf("failed to inspect project root %s: %w", root, err)
	}
	if !ok {
		return fmt.Errorf("project root %s is not a directory", root)
	}

	old := cfg.RootPath
	cfg.RootPath = root
	cfg.InputDir = rebase(old, root, cfg.InputDir)
	cfg.OutputDir = rebase(old, root, cfg.OutputDir)
	cfg.DataFile = rebase(old, root, cfg.DataFile)
	return nil
}

func rebase(oldRoot, newRoot, p string) string {
	rel, err := filepath.Rel(oldRoot, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return filepath.Join(newRoot, rel)
}
