package agg

import (
	"testing"

	"github.com/pamout/devlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDeployment(t *testing.T) {
	assert.True(t, IsDeployment(schema.Record{Type: "ci"}))
	assert.True(t, IsDeployment(schema.Record{Title: "Deploy to staging"}))
	assert.True(t, IsDeployment(schema.Record{Title: "x", FullContent: "edit .github/workflows/a.yml"}))
	assert.True(t, IsDeployment(schema.Record{Title: "x", FullContent: "docker-compose.yml"}))
	assert.True(t, IsDeployment(schema.Record{Title: "Set up CI/CD pipeline"}))
	assert.True(t, IsDeployment(schema.Record{Title: "x", FullContent: "Edit .GitHub/Workflows/ci.yml"}))
	assert.True(t, IsDeployment(schema.Record{Title: "x", FullContent: "Docker-Compose.yml"}))
	assert.False(t, IsDeployment(schema.Record{Type: "feat", Title: "Add board", FullContent: "frontend"}))

	for _, title := range []string{"Add special offers page", "Decide pricing copy", "Refactor abcd helper", "Improve precision of totals"} {
		assert.False(t, IsDeployment(schema.Record{Type: "feat", Title: title}), title)
	}
}

func TestDeploymentCategory(t *testing.T) {
	assert.Equal(t, schema.HotfixDeploy, DeploymentCategory(schema.Record{Title: "Fix deploy script"}))
	assert.Equal(t, schema.HotfixDeploy, DeploymentCategory(schema.Record{Title: "Workflow bug"}))
	assert.Equal(t, schema.CIConfigDeploy, DeploymentCategory(schema.Record{Title: "Update workflow"}))
	assert.Equal(t, schema.CIConfigDeploy, DeploymentCategory(schema.Record{Title: "x", FullContent: ".github/workflows/ci.yml"}))
	assert.Equal(t, schema.InfrastructureDeploy, DeploymentCategory(schema.Record{Title: "Docker images"}))
	assert.Equal(t, schema.InfrastructureDeploy, DeploymentCategory(schema.Record{Title: "x", FullContent: "docker-compose.yml"}))
	assert.Equal(t, schema.CIConfigDeploy, DeploymentCategory(schema.Record{Title: "x", FullContent: "Edit .GitHub/Workflows/ci.yml"}))
	assert.Equal(t, schema.InfrastructureDeploy, DeploymentCategory(schema.Record{Title: "x", FullContent: "DOCKER-COMPOSE.yml"}))
	assert.Equal(t, schema.ReleaseDeploy, DeploymentCategory(schema.Record{Title: "Deploy v1"}))
}

func TestDeployments(t *testing.T) {
	records := []schema.Record{
		{LogNumber: "4", Type: "ci", Title: "Add CI workflow", Date: "2025-01-10 10:00:00"},
		{LogNumber: "3", Type: "feat", Title: "Board"},
		{LogNumber: "2", Type: "fix", Title: "Fix docker build", Date: "2025-01-01 10:00:00"},
	}
	report := Deployments(records)
	require.Len(t, report.Deployments, 2)
	assert.Equal(t, "4", report.Deployments[0].Record.LogNumber)
	assert.Equal(t, schema.CIConfigDeploy, report.Deployments[0].Kind)
	assert.Equal(t, schema.HotfixDeploy, report.Deployments[1].Kind)
	assert.Equal(t, 0, report.Counts[schema.ReleaseDeploy])
	assert.Len(t, report.Counts, len(schema.AllDeploymentKinds))
	assert.Equal(t, 10, report.Frequency.TotalDays)

	empty := Deployments(nil)
	assert.Empty(t, empty.Deployments)
	assert.Equal(t, schema.Frequency{}, empty.Frequency)
}
