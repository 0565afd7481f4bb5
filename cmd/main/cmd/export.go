package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"swissdamed-migel/internal/fileio"
	"swissdamed-migel/internal/storage/sqlite"
	"swissdamed-migel/internal/swissdamed"
)

var exportFlags struct {
	source sourceFlags
	csv    bool
	sqlite bool
	deploy bool
	scp    string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download UDI data and write CSV and/or SQLite",
	Long:  "Without --csv or --sqlite both files are written. --deploy implies --sqlite and copies the database with scp.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportFlags.source.file, "file", "f", "", "use an existing JSON file instead of downloading")
	f.IntVar(&exportFlags.source.pageSize, "page-size", 0, "page size for API requests (default from config, 50)")
	f.BoolVar(&exportFlags.csv, "csv", false, "write a CSV file")
	f.BoolVar(&exportFlags.sqlite, "sqlite", false, "write a SQLite database")
	f.BoolVar(&exportFlags.deploy, "deploy", false, "copy the SQLite database to the scp target")
	f.StringVar(&exportFlags.scp, "scp", "", "scp target (default from config)")
}

// outputs resolves which writers run.
func outputs(csv, db, deploy bool) (doCSV, doSQLite bool) {
	switch {
	case !csv && !db:
		return true, true
	case deploy:
		return csv, true
	default:
		return csv, db
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	doCSV, doSQLite := outputs(exportFlags.csv, exportFlags.sqlite, exportFlags.deploy)

	values, err := loadValues(ctx, exportFlags.source)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		logger.Warn().Msg("no data found")
		return nil
	}

	table := swissdamed.Flatten(values)
	logger.Info().
		Int("items", len(values)).
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Headers)).
		Msg("processed")

	if doCSV {
		name := outputFilename("csv")
		if err := writeCSVFile(name, table); err != nil {
			return err
		}
		logger.Info().Str("file", name).Msg("CSV written")
	}

	if doSQLite {
		name := outputFilename("db")
		if err := sqlite.WriteTable(ctx, name, table.Headers, table.Rows); err != nil {
			return err
		}
		logger.Info().Str("file", name).Msg("SQLite written")

		if exportFlags.deploy {
			target := exportFlags.scp
			if target == "" {
				target = cfg.Deploy.SCPTarget
			}
			if err := deploy(ctx, name, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCSVFile(name string, table *fileio.Table) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := fileio.WriteCSV(f, table.Headers, table.Rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

func deploy(ctx context.Context, file, target string) error {
	logger.Info().Str("file", file).Str("target", target).Msg("deploying")
	c := exec.CommandContext(ctx, "scp", file, target)
	c.Stdout, c.Stderr = os.Stderr, os.Stderr
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("scp failed with exit code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("scp: %w", err)
	}
	logger.Info().Msg("deploy successful")
	return nil
}
