package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"swissdamed-migel/internal/config"
)

var (
	configFile string
	cfg        config.Config
	logger     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "swissdamed",
	Short:         "swissdamed UDI export, diff and MiGeL matching",
	Long:          "Download Swiss DAMED UDI data, convert it to CSV or SQLite, diff exports and match products against MiGeL positions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
		logger = config.SetupLogger(cfg)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml if present)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(migelCmd)
	rootCmd.AddCommand(serveCmd)
}

// dateStamp is the dd.mm.yyyy suffix of every output file.
func dateStamp(t time.Time) string { return t.Format("02.01.2006") }

func outputFilename(ext string) string {
	return fmt.Sprintf("swissdamed_%s.%s", dateStamp(time.Now()), ext)
}
