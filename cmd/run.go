package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/ledger"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		return runApp(cmd, topic)
	},
}

func init() {
	playCmd.Flags().String("topic", "", "Topic ID to start immediately")
}

// runApp opens the store and ledger and launches the TUI.
func runApp(cmd *cobra.Command, topic string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	st, err := openStore(e.cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	book, err := ledger.Open(cmd.Context(), st.SnapshotRepo(), e.log)
	if err != nil {
		return err
	}

	e.log.Info().
		Int("topics", len(e.bank.Topics)).
		Int("questions", e.bank.QuestionCount()).
		Msg("starting")

	return app.Run(app.Options{
		Config: e.cfg,
		Bank:   e.bank,
		Book:   book,
		Logger: e.log,
		Topic:  topic,
	})
}
