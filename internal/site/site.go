// Package site renders the static HTML report pages from a devlog document.
package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options tunes the aggregates shown on the pages.
type Options struct {
	RecordCategories schema.CategoryTable
	FileCategories   schema.CategoryTable
	TopFiles         int
}

func (o Options) topFiles() int {
	if o.TopFiles <= 0 {
		return contract.DefaultTopFiles
	}
	return o.TopFiles
}

// OptionsFromConfig copies the page options out of a validated config.
func OptionsFromConfig(cfg *contract.Config) Options {
	return Options{
		RecordCategories: cfg.RecordCategories,
		FileCategories:   cfg.FileCategories,
		TopFiles:         cfg.TopFiles,
	}
}

type pageSpec struct {
	title    string
	navLabel string
	file     string
	view     func(schema.Document, Options) any
}

var pageSpecs = map[schema.Page]pageSpec{
	schema.KanbanPage:       {"Dev Log Kanban Board", "Kanban Board", "kanban.html", newKanbanView},
	schema.TimelinePage:     {"Dev Log Timeline", "Timeline", "timeline.html", newTimelineView},
	schema.HeatmapPage:      {"Commit Heatmap", "Heatmap", "heatmap.html", newHeatmapView},
	schema.FilesPage:        {"File Change History", "Files", "files.html", newFilesView},
	schema.CommitSizePage:   {"Commit Size Analysis", "Commit Size", "commit-size.html", newCommitSizeView},
	schema.TimeAnalysisPage: {"Time Analysis", "Time Analysis", "time-analysis.html", newTimeAnalysisView},
	schema.DeploymentPage:   {"Deployment History", "Deployment", "deployment.html", newDeploymentView},
	schema.StatsPage:        {"Dev Log Statistics", "Statistics", "stats.html", newStatsView},
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// PageData is what every page template receives.
type PageData struct {
	Title       string
	Nav         []NavLink
	GeneratedAt string
	Statistics  schema.Statistics
	View        any
}

func navLinks(active schema.Page) []NavLink {
	links := make([]NavLink, 0, len(schema.AllPages))
	for _, p := range schema.AllPages {
		links = append(links, NavLink{
			Href:   p.FileName(),
			Label:  pageSpecs[p].navLabel,
			Active: p == active,
		})
	}
	return links
}

func parsePage(spec pageSpec) (*template.Template, error) {
	return template.New("layout.html").
		Funcs(funcMap()).
		ParseFS(templatesFS, "templates/layout.html", "templates/"+spec.file)
}

// RenderPage writes one page to w. Nothing is written when rendering fails.
func RenderPage(w io.Writer, doc schema.Document, opts Options, page schema.Page) error {
	spec, ok := pageSpecs[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	tmpl, err := parsePage(spec)
	if err != nil {
		return fmt.Errorf("failed to parse template for %s: %w", page, err)
	}

	data := PageData{
		Title:       spec.title,
		Nav:         navLinks(page),
		GeneratedAt: doc.GeneratedAt.Format(contract.DateTimeFormat),
		Statistics:  doc.Statistics,
		View:        spec.view(doc, opts),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// Render writes the given pages into outDir, or every page when none are given.
// A failing page does not stop the others; all failures are returned joined.
func Render(fs afero.Fs, doc schema.Document, outDir string, opts Options, pages ...schema.Page) error {
	if len(pages) == 0 {
		pages = schema.AllPages
	}
	if err := fs.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	var errs []error
	for _, page := range pages {
		path := filepath.Join(outDir, page.FileName())
		var buf bytes.Buffer
		if err := RenderPage(&buf, doc, opts, page); err != nil {
			contract.Logger.Error("Page not rendered", "page", page, "err", err)
			errs = append(errs, err)
			continue
		}
		if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
			contract.Logger.Error("Page not written", "path", path, "err", err)
			errs = append(errs, fmt.Errorf("failed to write %s: %w", path, err))
			continue
		}
		contract.Logger.Debug("Rendered page", "path", path)
	}
	return errors.Join(errs...)
}
