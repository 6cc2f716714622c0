package main

import (
	"fmt"
	"log/slog"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/joshuapare/strkit/internal/config"
	"github.com/joshuapare/strkit/internal/logger"
	"github.com/joshuapare/strkit/mstring"
	"github.com/joshuapare/strkit/registry"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	processor  string
)

var rootCmd = &cobra.Command{
	Use:   "strctl",
	Short: "Exercise managed strings backed by pluggable storage",
	Long: `strctl builds managed strings on the configured storage processors
(off-heap, heap, arena) and runs string operations against them: case
conversion, splitting, hashing and encoding. It also reports backend
allocation statistics.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return setupLogging() },
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Configuration file (.toml, .yaml)")
	rootCmd.PersistentFlags().
		StringVarP(&processor, "processor", "p", "", "Processor id (default from config)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config when given, otherwise defaults plus environment.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.FromEnv()
}

func setupLogging() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := logger.Options{
		Enabled: cfg.Log.Enabled,
		Level:   logger.ParseLevel(cfg.Log.Level),
		JSON:    cfg.Log.Format == "json",
	}
	if verbose {
		opts.Enabled = true
		opts.Level = slog.LevelDebug
	}
	if quiet {
		opts.Enabled = false
	}
	logger.Init(opts)
	return nil
}

// openEngine initializes an engine from the current flags. The caller must
// Close it.
func openEngine() (*registry.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return registry.Init(registry.WithConfig(cfg))
}

// factoryFor returns the --processor factory, or the engine default.
func factoryFor(e *registry.Engine) (*mstring.Factory, error) {
	if processor == "" {
		return e.Default()
	}
	return e.Get(processor)
}

// resolveLocale parses a --locale value, falling back to the configured one.
func resolveLocale(e *registry.Engine, name string) (language.Tag, error) {
	if name == "" {
		return e.Locale(), nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", name, err)
	}
	return tag, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
