package history

import (
	"errors"
	"fmt"

	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/internal/parquet"
)

// ExecuteHistoryExport exports the global history store to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	return ExportHistory(Manager.GetHistoryStore(), outputFile)
}

// ExportHistory writes runs to outputFile + ".runs.parquet" and record snapshots
// to outputFile + ".records.parquet".
func ExportHistory(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total record rows: %d\n", status.TotalRecordRows)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	snapshots, err := store.GetAllSnapshots()
	if err != nil {
		return fmt.Errorf("failed to retrieve record snapshots: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	recordsFile := outputFile + ".records.parquet"
	parquetSnapshots := parquet.ConvertRecordSnapshots(snapshots)
	if err := parquet.WriteRecordSnapshotsParquet(parquetSnapshots, recordsFile); err != nil {
		return fmt.Errorf("failed to write record snapshots: %w", err)
	}
	fmt.Printf("Exported %d record snapshots to: %s\n", len(parquetSnapshots), recordsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
