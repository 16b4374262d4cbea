package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	rosterCmd := &cobra.Command{Use: "roster", Short: "Personnel directory operations"}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the personnel directory with a YAML roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			b, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			result, err := b.directory().ImportRoster(cmd.Context(), f)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d people (%d commanders), deactivated %d\n",
				result.Imported, result.Commanders, result.Deactivated)
			return nil
		},
	}
	rosterCmd.AddCommand(importCmd)

	return rosterCmd
}
