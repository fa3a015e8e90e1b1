package agg

import (
	"strings"

	"github.com/pamout/devlog/schema"
)

var deployTitleWords = []string{"deploy", "workflow", "docker", "ci/cd"}

// IsDeployment reports whether a record relates to deployment: a ci type, a
// deployment word in the title, or a workflow or compose file in the content.
func IsDeployment(r schema.Record) bool {
	if r.Type == "ci" {
		return true
	}
	title := strings.ToLower(r.Title)
	for _, w := range deployTitleWords {
		if strings.Contains(title, w) {
			return true
		}
	}
	content := strings.ToLower(r.FullContent)
	return strings.Contains(content, ".github/workflows") || strings.Contains(content, "docker-compose")
}

// DeploymentCategory classifies a deployment record. Rules are checked in order:
// hotfix, ci-config, infrastructure, then release.
func DeploymentCategory(r schema.Record) schema.DeploymentKind {
	title := strings.ToLower(r.Title)
	content := strings.ToLower(r.FullContent)
	switch {
	case strings.Contains(title, "fix") || strings.Contains(title, "bug"):
		return schema.HotfixDeploy
	case strings.Contains(title, "workflow") || strings.Contains(content, ".github/workflows"):
		return schema.CIConfigDeploy
	case strings.Contains(title, "docker") || strings.Contains(content, "docker-compose"):
		return schema.InfrastructureDeploy
	default:
		return schema.ReleaseDeploy
	}
}

// Deployments selects and classifies deployment records, keeping input order,
// and computes their frequency.
func Deployments(records []schema.Record) schema.DeploymentReport {
	report := schema.DeploymentReport{
		Deployments: []schema.Deployment{},
		Counts:      make(map[schema.DeploymentKind]int, len(schema.AllDeploymentKinds)),
	}
	for _, k := range schema.AllDeploymentKinds {
		report.Counts[k] = 0
	}

	var selected []schema.Record
	for _, r := range records {
		if !IsDeployment(r) {
			continue
		}
		kind := DeploymentCategory(r)
		report.Deployments = append(report.Deployments, schema.Deployment{Record: r, Kind: kind})
		report.Counts[kind]++
		selected = append(selected, r)
	}
	report.Frequency = Frequency(selected)
	return report
}
