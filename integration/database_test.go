//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDevlogWithMySQL tests run history with a MySQL backend.
func TestDevlogWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "devlog",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/devlog?parseTime=true", host, port.Port())
	runHistoryScenario(t, "mysql", connStr)
}

// TestDevlogWithPostgres tests run history with a PostgreSQL backend.
func TestDevlogWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runHistoryScenario(t, "postgresql", connStr)
}

// runHistoryScenario migrates, builds twice and inspects the history store.
func runHistoryScenario(t *testing.T, backend, connStr string) {
	t.Helper()
	root := newProject(t)

	t.Setenv("DEVLOG_HISTORY_BACKEND", backend)
	t.Setenv("DEVLOG_HISTORY_DB_CONNECT", connStr)

	_, err := runDevlogCommand(t, root, "history", "clear")
	require.NoError(t, err)

	_, err = runDevlogCommand(t, root, "history", "migrate")
	require.NoError(t, err)

	for range 2 {
		_, err = runDevlogCommand(t, root, "build", "--skip-render", "--log-level", "error")
		require.NoError(t, err)
	}

	out, err := runDevlogCommand(t, root, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 2")
	assert.Contains(t, out, "Total Record Rows: 4")

	_, err = runDevlogCommand(t, root, "history", "export", "--output-file", root+"/export")
	require.NoError(t, err)
	assert.FileExists(t, root+"/export.runs.parquet")
	assert.FileExists(t, root+"/export.records.parquet")
}
