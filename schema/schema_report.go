package schema

import "time"

// Report bundles every aggregate over a document. It backs the stats command
// and the MCP tools.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Statistics  Statistics       `json:"statistics"`
	Frequency   Frequency        `json:"frequency"`
	Streak      Streak           `json:"streak"`
	ActiveDays  int              `json:"active_days"`
	FirstDate   string           `json:"first_date,omitempty"`
	LastDate    string           `json:"last_date,omitempty"`
	Time        TimeAnalysis     `json:"time_analysis"`
	Sizes       SizeDistribution `json:"commit_sizes"`
	Files       FileHistory      `json:"file_history"`
	Deployments DeploymentReport `json:"deployments"`
}
