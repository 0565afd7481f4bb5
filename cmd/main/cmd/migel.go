package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"swissdamed-migel/internal/migel/service"
	"swissdamed-migel/internal/storage/sqlite"
	"swissdamed-migel/internal/swissdamed"
)

var migelFlags struct {
	source  sourceFlags
	catalog string
	workers int
}

var migelCmd = &cobra.Command{
	Use:   "migel",
	Short: "Match UDI entries against MiGeL positions and write the matches to SQLite",
	Args:  cobra.NoArgs,
	RunE:  runMigel,
}

func init() {
	f := migelCmd.Flags()
	f.StringVarP(&migelFlags.source.file, "file", "f", "", "use an existing JSON file instead of downloading")
	f.IntVar(&migelFlags.source.pageSize, "page-size", 0, "page size for API requests (default from config, 50)")
	f.StringVar(&migelFlags.catalog, "catalog", "", "MiGeL workbook path or URL (default from config)")
	f.IntVar(&migelFlags.workers, "workers", 0, "matching goroutines (default from config, NumCPU)")
}

func runMigel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	values, err := loadValues(ctx, migelFlags.source)
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

	m, err := loadMatcher(ctx, migelFlags.catalog)
	if err != nil {
		return err
	}

	workers := migelFlags.workers
	if workers == 0 {
		workers = cfg.Migel.Workers
	}
	start := time.Now()
	matches, err := service.MatchRows(ctx, m, service.NewQueryBuilder(table.Headers), table.Rows, workers)
	if err != nil {
		return err
	}
	matched := service.AppendMatched(table.Rows, matches)
	logger.Info().
		Int("matched", len(matched)).
		Int("rows", len(table.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("MiGeL matches")

	if len(matched) == 0 {
		logger.Info().Msg("no MiGeL matches found")
		return nil
	}

	headers := append(append([]string{}, table.Headers...), service.MatchColumns...)
	name := fmt.Sprintf("swissdamed_migel_%s.db", dateStamp(time.Now()))
	if err := sqlite.WriteTable(ctx, name, headers, matched); err != nil {
		return err
	}
	logger.Info().Str("file", name).Msg("SQLite written")
	return nil
}
