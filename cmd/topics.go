package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the bank's topics (optionally filtered by kind)",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		topics := e.bank.Topics
		switch kind {
		case "":
		case string(bank.KindChoice), string(bank.KindWritten):
			topics = e.bank.ByKind(bank.Kind(kind))
		default:
			return fmt.Errorf("invalid kind %q: must be choice or written", kind)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-32s  %-8s  %9s\n", "ID", "Title", "Kind", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 76))

		for _, t := range topics {
			title := t.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			k := string(t.Kind)
			if t.Marathon {
				k = "marathon"
			}
			fmt.Fprintf(out, "%-20s  %-32s  %-8s  %9d\n", t.ID, title, k, len(t.Questions))
		}

		fmt.Fprintf(out, "\n%d topics, %d questions (bank %s)\n", len(topics), e.bank.QuestionCount(), e.bank.Version)
		if n := len(e.bank.Dropped); n > 0 {
			fmt.Fprintf(out, "%d malformed questions dropped:\n", n)
			for _, d := range e.bank.Dropped {
				fmt.Fprintf(out, "  %s\n", d)
			}
		}
		return nil
	},
}

func init() {
	topicsCmd.Flags().String("kind", "", "Filter by kind (choice or written)")
}
