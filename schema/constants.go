package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// Category represents the area of the codebase a record or file belongs to.
	Category string

	// SizeBucket represents the size class of a commit by lines changed.
	SizeBucket string

	// DeploymentKind represents the kind of a deployment-related record.
	DeploymentKind string

	// Page represents one of the rendered HTML views.
	Page string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All categories supported. OtherCategory is the fallback when no pattern matches.
const (
	FrontendCategory Category = "frontend"
	BackendCategory  Category = "backend"
	DocsCategory     Category = "docs"
	ConfigCategory   Category = "config"
	OtherCategory    Category = "other"
)

// Commit size buckets by total lines changed.
const (
	SmallSize  SizeBucket = "small"  // < 50
	MediumSize SizeBucket = "medium" // < 200
	LargeSize  SizeBucket = "large"  // < 500
	XLargeSize SizeBucket = "xlarge"
)

// Deployment kinds.
const (
	HotfixDeploy         DeploymentKind = "hotfix"
	CIConfigDeploy       DeploymentKind = "ci-config"
	InfrastructureDeploy DeploymentKind = "infrastructure"
	ReleaseDeploy        DeploymentKind = "release"
)

// Rendered pages.
const (
	KanbanPage       Page = "index"
	TimelinePage     Page = "timeline"
	HeatmapPage      Page = "heatmap"
	FilesPage        Page = "files"
	CommitSizePage   Page = "commit-size"
	DeploymentPage   Page = "deployment"
	TimeAnalysisPage Page = "time-analysis"
	StatsPage        Page = "stats"
)

// UnknownType is the by_type key for records without a type.
const UnknownType = "unknown"

// AllCategories lists categories in display order.
var AllCategories = []Category{FrontendCategory, BackendCategory, DocsCategory, ConfigCategory, OtherCategory}

// AllSizeBuckets lists size buckets from smallest to largest.
var AllSizeBuckets = []SizeBucket{SmallSize, MediumSize, LargeSize, XLargeSize}

// AllDeploymentKinds lists deployment kinds in display order.
var AllDeploymentKinds = []DeploymentKind{ReleaseDeploy, HotfixDeploy, InfrastructureDeploy, CIConfigDeploy}

// AllPages lists every page in navigation order.
var AllPages = []Page{KanbanPage, TimelinePage, HeatmapPage, FilesPage, CommitSizePage, TimeAnalysisPage, DeploymentPage, StatsPage}

// WeekdayNames lists weekday keys starting with Monday.
var WeekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidPages lists all valid page names.
var ValidPages = map[Page]struct{}{
	KanbanPage:       {},
	TimelinePage:     {},
	HeatmapPage:      {},
	FilesPage:        {},
	CommitSizePage:   {},
	DeploymentPage:   {},
	TimeAnalysisPage: {},
	StatsPage:        {},
}

// FileName returns the HTML file name for the page.
func (p Page) FileName() string {
	return string(p) + ".html"
}
