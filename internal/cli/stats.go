package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"casebinder/internal/pipeline"
	"casebinder/internal/report"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show evidence counts without writing outputs",
	Long: `Stats loads the OCR records and scans external data, then prints
counts only. Nothing is written to disk.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	run, err := p.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	report.RenderStats(os.Stdout, run)
	return nil
}
