package schema

// Frequency is the rate of dated records per day, week and month over their span.
type Frequency struct {
	Daily     float64 `json:"daily"`
	Weekly    float64 `json:"weekly"`
	Monthly   float64 `json:"monthly"`
	TotalDays int     `json:"total_days"`
}

// Streak holds consecutive-active-day runs.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// TimeAnalysis is the time-of-day and day-of-week activity profile.
type TimeAnalysis struct {
	Total              int            `json:"total"`
	Hours              map[int]int    `json:"hours"`
	Weekdays           map[string]int `json:"weekdays"`
	PeakHour           int            `json:"peak_hour"`
	PeakHourCount      int            `json:"peak_hour_count"`
	PeakPeriod         string         `json:"peak_period"`
	MostActiveDay      string         `json:"most_active_day"`
	MostActiveDayCount int            `json:"most_active_day_count"`
	WeekdayCommits     int            `json:"weekday_commits"`
	WeekendCommits     int            `json:"weekend_commits"`
	WeekdayPercent     float64        `json:"weekday_percent"`
	Balance            string         `json:"balance"`
}

// SizeEntry is one record placed into a size bucket.
type SizeEntry struct {
	LogNumber string     `json:"log_number"`
	Title     string     `json:"title"`
	Added     int        `json:"added"`
	Deleted   int        `json:"deleted"`
	Total     int        `json:"total"`
	Files     int        `json:"files"`
	Date      string     `json:"date"`
	Commit    string     `json:"commit"`
	Bucket    SizeBucket `json:"bucket"`
}

// SizeDistribution groups records by size bucket.
type SizeDistribution struct {
	Total    int                        `json:"total"`
	Buckets  map[SizeBucket][]SizeEntry `json:"buckets"`
	Counts   map[SizeBucket]int         `json:"counts"`
	Percents map[SizeBucket]float64     `json:"percents"`
	Largest  []SizeEntry                `json:"largest"`
}

// FileCommit is a record that touched a file.
type FileCommit struct {
	Commit    string `json:"commit"`
	LogNumber string `json:"log_number"`
	Date      string `json:"date"`
	Title     string `json:"title"`
}

// FileChange aggregates every record that touched one path.
type FileChange struct {
	Path     string       `json:"path"`
	Count    int          `json:"count"`
	Category Category     `json:"category"`
	Commits  []FileCommit `json:"commits"`
}

// FileHistory is the per-file change report.
type FileHistory struct {
	TotalFiles int              `json:"total_files"`
	Top        []FileChange     `json:"top"`
	Categories map[Category]int `json:"categories"`
}

// Deployment is one deployment-related record.
type Deployment struct {
	Record Record         `json:"record"`
	Kind   DeploymentKind `json:"kind"`
}

// DeploymentReport groups deployment-related records.
type DeploymentReport struct {
	Deployments []Deployment           `json:"deployments"`
	Counts      map[DeploymentKind]int `json:"counts"`
	Frequency   Frequency              `json:"frequency"`
}

// HeatmapCell is one calendar day of the heatmap.
type HeatmapCell struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Level   int    `json:"level"`
	InRange bool   `json:"in_range"`
}

// HeatmapWeek is a Monday-aligned column of seven cells.
type HeatmapWeek struct {
	Days []HeatmapCell `json:"days"`
}

// Heatmap is the calendar grid with its summary.
type Heatmap struct {
	Weeks      []HeatmapWeek `json:"weeks"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	MaxCount   int           `json:"max_count"`
	ActiveDays int           `json:"active_days"`
	Streak     Streak        `json:"streak"`
}

// DayGroup is the timeline bucket for one calendar day.
type DayGroup struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Records []Record `json:"records"`
}

// KanbanColumn is one board column keyed by type.
type KanbanColumn struct {
	Type    TypeInfo `json:"type"`
	Records []Record `json:"records"`
}
