// Package main provides a performance benchmarking tool for the devlog CLI.
// It generates synthetic dev-log projects of increasing size and measures
// execution times per command, running each test multiple times, treating the
// first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - devlog binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory receiving the generated projects (default: a temp dir)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Project       string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	ProjectSizes  map[string]int
	Projects      []string
	Commands      map[string][]string
}

func main() {
	workDir := ""
	switch len(os.Args) {
	case 1:
		dir, err := os.MkdirTemp("", "devlog-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(dir) }()
		workDir = dir
	case 2:
		workDir = os.Args[1]
	default:
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Projects:      []string{"small", "medium", "large"},
		ProjectSizes: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  10000,
		},
		Commands: map[string][]string{
			"build": {"build"},
			"stats": {"stats", "--output", "csv"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the devlog binary exists and generates the projects
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("devlog"); err != nil {
		return fmt.Errorf("devlog binary not found in PATH")
	}

	for _, project := range config.Projects {
		root := filepath.Join(config.WorkDir, project)
		if err := generateProject(root, config.ProjectSizes[project]); err != nil {
			return fmt.Errorf("failed to generate project %s: %w", project, err)
		}
	}

	return nil
}

// generateProject writes n synthetic dev logs under root/docs/dev-log
func generateProject(root string, n int) error {
	dir := filepath.Join(root, "docs", "dev-log")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	types := []string{"feat", "fix", "docs", "ci", "refactor"}
	paths := []string{"src/components/Board.tsx", "server/api.py", "docs/guide.md", ".github/workflows/ci.yml", "app/models/user.py"}
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= n; i++ {
		when := start.Add(time.Duration(i*7) * time.Hour)
		kind := types[i%len(types)]
		path := paths[i%len(paths)]
		added := (i * 37) % 700
		content := fmt.Sprintf("# Development Log #%d - Change %d (%s)\n\n"+
			"**Date**: %s\n**Author**: bench\n**Commit**: `%012x`\n**Type**: %s\n\n"+
			"## Summary\n\nSynthetic change %d.\n\n"+
			"## Details\n\n- Touch %s\n- Update tests\n\n"+
			"| Status | File | Note |\n|---|---|---|\n| `~` | `%s` | edit |\n\n"+
			"| Metric | Value |\n|---|---|\n| Files Changed | 1 |\n| Lines Added | +%d |\n| Lines Deleted | -%d |\n",
			i, i, kind, when.Format("2006-01-02 15:04:05"), i, kind, i, path, path, added, added/3)
		name := filepath.Join(dir, fmt.Sprintf("%05d-change.md", i))
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarks executes all benchmark tests across generated projects
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d projects, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Projects), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, project := range config.Projects {
		fmt.Printf("Benchmarking %s (%d logs)\n", project, config.ProjectSizes[project])
		root := filepath.Join(config.WorkDir, project)

		for _, command := range []string{"build", "stats"} {
			results = append(results, runBenchmarkSuite(config, project, root, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, project, root, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, project)
	dbPath := filepath.Join(config.WorkDir, project+"-history.db")

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, root, command, backend, dbPath, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Project:       project,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a devlog command multiple times with the given history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, root, command, backend, dbPath string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{}, config.Commands[command]...)
	args = append(args, "--history-backend", backend)
	if backend == "sqlite" {
		args = append(args, "--history-db-connect", dbPath)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("devlog", args...)
		cmd.Dir = root

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "stats" {
		return strings.Contains(outputStr, "section,key,value")
	}
	return strings.Contains(outputStr, "Build finished")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/devlog_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"project", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Project, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "build", "Build:")
	printCommandSummary(results, "stats", "Stats:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-history: %s, Cold: %s, Warm: %s\n", result.Project, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
