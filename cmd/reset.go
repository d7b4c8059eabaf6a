package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/ledger"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear the ledger without --yes")
		}

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
		if err := book.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Ledger cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm clearing every recorded result")
}
