package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/scoring"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <question-id> [answer...]",
	Short: "Score a written answer without starting a session",
	Long: `Score a free-text answer against a written question in the bank.

The answer is taken from the remaining arguments, or read from stdin when
none are given. Nothing is recorded in the ledger.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().Bool("revealed", false, "Apply the reveal penalty")
}

func runGrade(cmd *cobra.Command, args []string) error {
	revealed, _ := cmd.Flags().GetBool("revealed")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	q, ok := e.bank.FindQuestion(args[0])
	if !ok {
		return fmt.Errorf("no question found for %q", args[0])
	}
	if q.Kind != bank.KindWritten {
		return fmt.Errorf("question %q is not a written question", q.ID)
	}

	answer := strings.Join(args[1:], " ")
	if answer == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read answer: %w", err)
		}
		answer = string(data)
	}
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("empty answer")
	}

	engine := scoring.NewEngine(scoring.Config{PassThreshold: e.cfg.PassThreshold})
	res := engine.Score(q, scoring.Submission{Text: answer, UsedReveal: revealed})
	fb := scoring.NewMessages(nil).Classify(q.Kind, res)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "── %s ──\n%s\n\n", q.ID, q.Prompt)
	if bd := res.Breakdown; bd != nil {
		fmt.Fprintf(out, "Keywords:  %d/%d matched  %5.1f\n", bd.MatchedKeywords, bd.TotalKeywords, bd.Keywords)
		fmt.Fprintf(out, "Length:                  %5.1f\n", bd.Length)
		fmt.Fprintf(out, "Structure:               %5d\n", bd.Structure)
		fmt.Fprintf(out, "Critical thinking:       %5d\n", bd.Critical)
	}
	if revealed {
		fmt.Fprintf(out, "Reveal penalty:          %5d\n", -scoring.RevealPenalty)
	}
	fmt.Fprintf(out, "Score:                   %5d/100\n\n", res.Score)

	fmt.Fprintln(out, fb.Headline)
	for _, s := range fb.Suggestions {
		fmt.Fprintf(out, "  • %s\n", s)
	}
	return nil
}
