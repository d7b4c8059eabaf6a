package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Timed revision quizzes in the terminal",
	Long: `quizdeck runs timed multiple-choice quizzes and free-text exam practice
from a question bank, scoring written answers and keeping a ledger of results.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides QUIZDECK_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a JSON or YAML question bank (overrides QUIZDECK_BANK)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every command needs: settings, a logger and the bank.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
	bank   *bank.Bank
}

func (e *env) Close() error {
	return e.closer.Close()
}

// loadEnv loads the configuration, applies the persistent flags on top of
// it and opens the logger and the question bank.
func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}

	log, closer, err := logger.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	b, err := bank.Open(cfg.BankPath)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open bank: %w", err)
	}
	for _, d := range b.Dropped {
		log.Warn().Str("question", d.String()).Msg("dropped malformed question")
	}

	return &env{cfg: cfg, log: log, closer: closer, bank: b}, nil
}

// resolveDBPath returns the database path from config, then QUIZDECK_DB,
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
