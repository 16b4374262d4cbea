package main

import (
	"errors"
	"fmt"

	"github.com/shift-report/shift-report-backend-go/internal/pkg/sse"
	"github.com/shift-report/shift-report-backend-go/internal/repository/postgresql"
	locationService "github.com/shift-report/shift-report-backend-go/internal/service/location"
	shiftService "github.com/shift-report/shift-report-backend-go/internal/service/shift"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("refusing to delete without --yes")

// noopPublisher drops live events; the CLI has no subscribers.
type noopPublisher struct{}

func (noopPublisher) Publish(topic string, event sse.Event) {}

func newResetCmd() *cobra.Command {
	var yes bool
	resetCmd := &cobra.Command{Use: "reset", Short: "Delete stored data"}
	resetCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")

	pingsCmd := &cobra.Command{
		Use:   "pings",
		Short: "Delete every location ping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			b, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			svc := locationService.NewLocationService(postgresql.NewLocationPingRepository(b.db), b.directory(), noopPublisher{}, nil, nil)
			deleted, err := svc.Reset(cmd.Context(), yes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d location pings\n", deleted)
			return nil
		},
	}

	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "Delete every shift report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			b, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			svc := shiftService.NewShiftService(postgresql.NewShiftReportRepository(b.db), b.directory(), noopPublisher{}, nil, b.cfg.App.Location, nil)
			deleted, err := svc.Reset(cmd.Context(), yes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d shift reports\n", deleted)
			return nil
		},
	}

	resetCmd.AddCommand(pingsCmd, reportsCmd)
	return resetCmd
}
