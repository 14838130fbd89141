package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/odpanel/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Input overrides (override config if set)
	flagDataDir   string
	flagDelimiter string
	flagEncoding  string
	// Output
	flagJSON   bool
	flagOutput string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "odpanel",
	Short: "odpanel: origin-destination mobility survey dashboard",
	Long: `odpanel loads the three tables of an origin-destination household survey (trips,
residents and dwellings) and reports fieldwork progress, OD matrices, modal split and
socioeconomic profiles in the terminal or over an HTTP API.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.odpanel/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the survey files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagEncoding, "encoding", "", "input text encoding, e.g. latin1 or utf-8 (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "write the result to a file instead of stdout")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data-dir") && flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if f.Changed("delimiter") && flagDelimiter != "" {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("encoding") && flagEncoding != "" {
		cfg.Encoding = flagEncoding
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	if err := cfgpkg.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
}
