package main

import (
	"fmt"

	serviceAuth "github.com/shift-report/shift-report-backend-go/internal/service/auth"
	"github.com/spf13/cobra"
)

func newAccessCodeCmd() *cobra.Command {
	accessCodeCmd := &cobra.Command{Use: "access-code", Short: "Supervisor access code helpers"}

	hashCmd := &cobra.Command{
		Use:   "hash CODE",
		Short: "Print the bcrypt hash to use as SUPERVISOR_ACCESS_CODE_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := serviceAuth.HashAccessCode(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	accessCodeCmd.AddCommand(hashCmd)

	return accessCodeCmd
}
