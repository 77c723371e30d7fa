package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"casebinder/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "casebinder",
	Short: "casebinder - legal evidence triage and court package preparation",
	Long: `casebinder prepares court-ready evidence packages from processed OCR data.

It loads OCR result CSVs and external data (GeoJSON location history,
email transcripts), categorizes each item by legal relevance, computes a
weighted evidence score, verifies cryptographic hashes against the
integrity log, and writes a master exhibit index plus a defensibility
statement.

casebinder does not perform OCR, render PDFs, or talk to cloud services;
those belong to the surrounding tooling.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("casebinder v1.0.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.casebinder/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.casebinder")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CASEBINDER_*
	viper.SetEnvPrefix("CASEBINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// newLogger builds the structured logger shared by all commands
func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.Encoding = "console"
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadConfig assembles the run configuration from defaults, the config
// file, environment, and bound flags, then validates it once.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	viper.SetDefault("case_id", cfg.CaseID)
	viper.SetDefault("records.dir", cfg.Records.Dir)
	viper.SetDefault("external.dir", cfg.External.Dir)
	viper.SetDefault("output.exhibit_dir", cfg.Output.ExhibitDir)
	viper.SetDefault("integrity.log_path", cfg.Integrity.LogPath)
	viper.SetDefault("integrity.cache_dir", cfg.Integrity.CacheDir)
	viper.SetDefault("integrity.cache_ttl", cfg.Integrity.CacheTTL)
	viper.SetDefault("recheck.workers", cfg.Recheck.Workers)
	viper.SetDefault("recheck.rate_per_second", cfg.Recheck.RatePerSecond)
	viper.SetDefault("recheck.burst", cfg.Recheck.Burst)
	viper.SetDefault("render.command", cfg.Render.Command)

	cfg.CaseID = viper.GetString("case_id")
	cfg.Records.Dir = viper.GetString("records.dir")
	cfg.External.Dir = viper.GetString("external.dir")
	cfg.Output.ExhibitDir = viper.GetString("output.exhibit_dir")
	cfg.Output.Verbose = verbose
	cfg.Integrity.LogPath = viper.GetString("integrity.log_path")
	cfg.Integrity.CacheDir = viper.GetString("integrity.cache_dir")
	cfg.Integrity.CacheTTL = viper.GetDuration("integrity.cache_ttl")
	cfg.Recheck.Workers = viper.GetInt("recheck.workers")
	cfg.Recheck.RatePerSecond = viper.GetFloat64("recheck.rate_per_second")
	cfg.Recheck.Burst = viper.GetInt("recheck.burst")
	cfg.Render.Command = viper.GetString("render.command")

	// The keyword table can be overridden wholesale from the config file
	if viper.IsSet("categories") {
		var rules []model.CategoryRule
		if err := viper.UnmarshalKey("categories", &rules); err != nil {
			return nil, fmt.Errorf("parse categories: %w", err)
		}
		if len(rules) > 0 {
			cfg.Categories = rules
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
