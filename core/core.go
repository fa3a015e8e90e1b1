// Package core has core logic for building, loading and reporting on dev logs.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pamout/devlog/core/extract"
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/internal/outwriter"
	"github.com/pamout/devlog/internal/site"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

// ExecutorFunc defines the function signature for executing commands that read the records.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ErrRecordNotFound is returned when no record carries the requested log number.
var ErrRecordNotFound = errors.New("record not found")

var (
	// appFs is the filesystem commands use unless the context carries one.
	appFs afero.Fs = afero.NewOsFs()

	// headerOut receives run headers so that stdout stays machine readable.
	headerOut io.Writer = os.Stderr
)

// BuildResult summarizes one build run.
type BuildResult struct {
	Document schema.Document
	Skipped  []string
	RunID    int64
}

// ExecuteBuild parses the input directory, writes the JSON artifact and renders
// every configured page. The run is tracked when a history store is configured.
func ExecuteBuild(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := GetBuildResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	contract.Logger.Info("Build finished",
		"logs", len(result.Document.Logs),
		"skipped", len(result.Skipped),
		"data", cfg.DataFile,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// GetBuildResults runs the build pipeline and returns what it produced.
// Page failures are returned after the artifact is written and the run is recorded.
func GetBuildResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (*BuildResult, error) {
	if !shouldSuppressHeader(ctx) {
		logRunHeader(headerOut, cfg, cfg.InputDir)
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	var store contract.HistoryStore
	if mgr != nil {
		store = mgr.GetHistoryStore()
	}
	if store != nil {
		configParams := map[string]any{
			"root_path":   cfg.RootPath,
			"input_dir":   cfg.InputDir,
			"output_dir":  cfg.OutputDir,
			"data_file":   cfg.DataFile,
			"skip_render": cfg.SkipRender,
			"pages":       pageNames(cfg),
		}
		var err error
		runID, err = store.BeginRun(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	fs := fsFrom(ctx)

	// --- 1. Extraction ---
	parsed, err := extract.ParseDir(fs, cfg.InputDir)
	if err != nil {
		return nil, err
	}

	// --- 2. Serialization ---
	doc := BuildDocument(parsed.Records, cfg.RecordCategories, time.Now())
	writer := outwriter.NewOutWriter(fs)
	if err := writer.WriteDocument(cfg.DataFile, doc); err != nil {
		return nil, err
	}

	// --- 3. Rendering ---
	var renderErr error
	if !cfg.SkipRender {
		renderErr = site.Render(fs, doc, cfg.OutputDir, site.OptionsFromConfig(cfg), cfg.Pages...)
	}

	// --- 4. End Run Tracking ---
	if store != nil && runID > 0 {
		if err := store.RecordSnapshots(runID, Snapshots(doc.Logs, cfg.RecordCategories)); err != nil {
			contract.LogWarn("Failed to record snapshots", err)
		}
		if err := store.EndRun(runID, time.Now(), len(doc.Logs), len(parsed.Skipped)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	result := &BuildResult{Document: doc, Skipped: parsed.Skipped, RunID: runID}
	if renderErr != nil {
		return result, fmt.Errorf("rendering failed: %w", renderErr)
	}
	return result, nil
}

// pageNames lists the pages a build renders.
func pageNames(cfg *contract.Config) []string {
	pages := cfg.Pages
	if len(pages) == 0 {
		pages = schema.AllPages
	}
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = string(p)
	}
	return names
}

// GetDocument loads the JSON artifact when it exists, otherwise it parses the
// input directory in memory without writing anything.
func GetDocument(ctx context.Context, cfg *contract.Config) (schema.Document, error) {
	fs := fsFrom(ctx)
	exists, err := afero.Exists(fs, cfg.DataFile)
	if err != nil {
		return schema.Document{}, err
	}
	if exists {
		if !shouldSuppressHeader(ctx) {
			logRunHeader(headerOut, cfg, cfg.DataFile)
		}
		return LoadDocument(fs, cfg.DataFile)
	}

	if !shouldSuppressHeader(ctx) {
		logRunHeader(headerOut, cfg, cfg.InputDir)
	}
	parsed, err := extract.ParseDir(fs, cfg.InputDir)
	if err != nil {
		return schema.Document{}, err
	}
	return BuildDocument(parsed.Records, cfg.RecordCategories, time.Now()), nil
}

// GetReport loads the document and computes every aggregate.
func GetReport(ctx context.Context, cfg *contract.Config) (schema.Report, time.Duration, error) {
	start := time.Now()
	doc, err := GetDocument(ctx, cfg)
	if err != nil {
		return schema.Report{}, 0, err
	}
	report := BuildReport(doc, cfg)
	return report, time.Since(start), nil
}

// GetRecord loads the document and returns a single record by log number.
func GetRecord(ctx context.Context, cfg *contract.Config, logNumber string) (schema.Record, error) {
	doc, err := GetDocument(ctx, cfg)
	if err != nil {
		return schema.Record{}, err
	}
	record, ok := FindRecord(doc.Logs, logNumber)
	if !ok {
		return schema.Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, logNumber)
	}
	return record, nil
}

// ExecuteRender renders pages from the existing JSON artifact.
func ExecuteRender(ctx context.Context, cfg *contract.Config) error {
	if !shouldSuppressHeader(ctx) {
		logRunHeader(headerOut, cfg, cfg.DataFile)
	}
	fs := fsFrom(ctx)
	doc, err := LoadDocument(fs, cfg.DataFile)
	if err != nil {
		return err
	}
	if err := site.Render(fs, doc, cfg.OutputDir, site.OptionsFromConfig(cfg), cfg.Pages...); err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	contract.Logger.Info("Pages rendered", "dir", cfg.OutputDir, "pages", len(pageNames(cfg)))
	return nil
}

// ExecuteStats prints the aggregate report.
func ExecuteStats(ctx context.Context, cfg *contract.Config) error {
	report, duration, err := GetReport(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(fsFrom(ctx)).WriteStats(report, cfg, duration)
}

// ExecuteLogs prints every record as a listing.
func ExecuteLogs(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	doc, err := GetDocument(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(fsFrom(ctx)).WriteLogs(doc.Logs, cfg, time.Since(start))
}

// ExecuteShow prints one record in full.
func ExecuteShow(ctx context.Context, cfg *contract.Config, logNumber string) error {
	record, err := GetRecord(ctx, cfg, logNumber)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(fsFrom(ctx)).WriteRecord(record, cfg)
}
