package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the latest result for each written topic",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		l := book.Ledger()
		out := cmd.OutOrStdout()
		entries := l.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No written topics completed yet.")
			return nil
		}

		fmt.Fprintf(out, "%-20s  %-9s  %14s  %5s  %8s  %s\n", "Topic", "Mode", "Points", "%", "Attempts", "Completed")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, en := range entries {
			fmt.Fprintf(out, "%-20s  %-9s  %7.1f/%-6d  %4.0f%%  %8d  %s\n",
				en.TopicID, en.Mode, en.PointsEarned, en.PointsPossible, en.Percent(), en.Attempts,
				en.CompletedAt.Format("2006-01-02 15:04"))
		}

		t := l.Totals()
		fmt.Fprintf(out, "\nTotal: %.1f/%d points (%.0f%%) across %d topics\n",
			t.PointsEarned, t.PointsPossible, t.Percent(), t.Completed)
		return nil
	},
}
