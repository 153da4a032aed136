package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "triviaz",
	Short: "Adaptive multiple-choice trivia",
	Long: "Triviaz — multiple-choice trivia that adapts its difficulty to how well you play.\n" +
		"Play in the terminal, in a browser (serve) or on Telegram (bot).",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TRIVIAZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/triviaz/config.yaml)")
	rootCmd.PersistentFlags().String("source", "", "Question source: opentdb, llm or static")
	rootCmd.PersistentFlags().Int("batch-size", 0, "Questions per batch")
	rootCmd.PersistentFlags().String("difficulty", "", "Starting difficulty: easy, medium, hard or any")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies any flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Provider.Source, _ = flags.GetString("source")
	}
	if flags.Changed("batch-size") {
		cfg.Quiz.BatchSize, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("difficulty") {
		cfg.Quiz.Difficulty, _ = flags.GetString("difficulty")
	}
	if flags.Changed("db") {
		cfg.Store.Path, _ = flags.GetString("db")
	}

	config.Normalize(&cfg)
	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag or the config file
// (highest priority), then TRIVIAZ_DB env var, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the event log it points at.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cmd.Context(), dbPath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}
