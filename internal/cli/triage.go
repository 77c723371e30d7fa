package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"casebinder/internal/pipeline"
	"casebinder/internal/report"
)

var generatePDFs bool

// triageCmd represents the triage command
var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Run the full evidence triage and write the exhibit package",
	Long: `Triage runs the complete pipeline:
- Load all processed OCR result CSVs
- Scan external data (GeoJSON location history, email transcripts)
- Categorize each record by legal relevance
- Compute weighted evidence scores
- Verify hashes against the integrity log
- Assign exhibit names and write the master index and defensibility statement

Example:
  casebinder triage --case-id FD2024-117
  casebinder triage --records-dir ./output --external-dir ./takeout --generate-pdfs`,
	Args: cobra.NoArgs,
	RunE: runTriage,
}

func init() {
	rootCmd.AddCommand(triageCmd)

	triageCmd.Flags().String("case-id", "", "case identifier used in exhibit names")
	triageCmd.Flags().String("records-dir", "", "directory of processed OCR CSVs")
	triageCmd.Flags().String("external-dir", "", "directory of external data (GeoJSON, email CSVs)")
	triageCmd.Flags().String("exhibit-dir", "", "output directory for the exhibit package")
	triageCmd.Flags().String("integrity-log", "", "path to the SQLite integrity log")
	triageCmd.Flags().String("render-cmd", "", "external PDF exhibit generator command")
	triageCmd.Flags().BoolVar(&generatePDFs, "generate-pdfs", false, "invoke the external PDF exhibit generator")

	_ = viper.BindPFlag("case_id", triageCmd.Flags().Lookup("case-id"))
	_ = viper.BindPFlag("records.dir", triageCmd.Flags().Lookup("records-dir"))
	_ = viper.BindPFlag("external.dir", triageCmd.Flags().Lookup("external-dir"))
	_ = viper.BindPFlag("output.exhibit_dir", triageCmd.Flags().Lookup("exhibit-dir"))
	_ = viper.BindPFlag("integrity.log_path", triageCmd.Flags().Lookup("integrity-log"))
	_ = viper.BindPFlag("render.command", triageCmd.Flags().Lookup("render-cmd"))
}

func runTriage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Render.Enabled = generatePDFs

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "Case:         %s\n", cfg.CaseID)
		fmt.Fprintf(os.Stderr, "Records dir:  %s\n", cfg.Records.Dir)
		fmt.Fprintf(os.Stderr, "External dir: %s\n", cfg.External.Dir)
		fmt.Fprintf(os.Stderr, "Exhibit dir:  %s\n", cfg.Output.ExhibitDir)
		fmt.Fprintln(os.Stderr)
	}

	run, err := p.Run(context.Background())
	if err != nil {
		return fmt.Errorf("triage failed: %w", err)
	}

	report.RenderSummary(os.Stdout, run)
	return nil
}
