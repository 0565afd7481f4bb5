package cmd

import (
	"github.com/spf13/cobra"

	"swissdamed-migel/internal/diff"
	"swissdamed-migel/internal/fileio"
)

var diffDir string

var diffCmd = &cobra.Command{
	Use:   "diff OLD_CSV NEW_CSV",
	Short: "Diff two CSV exports by udiDiCode",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffDir, "out", "diff", "output directory")
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldPath, newPath := args[0], args[1]
	old, err := fileio.ReadCSVFile(oldPath)
	if err != nil {
		return err
	}
	cur, err := fileio.ReadCSVFile(newPath)
	if err != nil {
		return err
	}

	changes, err := diff.Compare(old, cur)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		logger.Info().Msg("no differences found")
		return nil
	}

	out, err := diff.WriteReport(diffDir, oldPath, newPath, old.Headers, changes)
	if err != nil {
		return err
	}
	s := diff.Summarize(changes)
	logger.Info().
		Str("file", out).
		Int("added", s.Added).
		Int("removed", s.Removed).
		Int("changed", s.Changed).
		Msg("diff written")
	return nil
}
