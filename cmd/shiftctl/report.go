package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/domain/report"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/storage"
	"github.com/shift-report/shift-report-backend-go/internal/repository/postgresql"
	reportService "github.com/shift-report/shift-report-backend-go/internal/service/report"
	shiftService "github.com/shift-report/shift-report-backend-go/internal/service/shift"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{Use: "report", Short: "Supervisor reports"}

	var weekStart, out, dir string
	var force bool
	weeklyCmd := &cobra.Command{
		Use:   "weekly",
		Short: "Write the weekly hours workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			svc := reportService.NewReportService(
				postgresql.NewShiftReportRepository(b.db),
				postgresql.NewLocationPingRepository(b.db),
				b.directory(),
				shiftService.NewHoursCalculator(),
				b.cfg.App.Location,
				time.Now,
			)

			file, err := svc.ExportWeeklyHours(cmd.Context(), report.WeekRequest{WeekStart: weekStart})
			if err != nil {
				return err
			}

			store, err := storage.NewLocalStorage(dir)
			if err != nil {
				return err
			}

			name := out
			if name == "" {
				name = file.Filename
			}
			path, err := store.Save(cmd.Context(), name, bytes.NewReader(file.Content), force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	weeklyCmd.Flags().StringVarP(&weekStart, "week-start", "w", "", "First day of the week, YYYY-MM-DD (defaults to the current week)")
	weeklyCmd.Flags().StringVarP(&out, "out", "o", "", "Output file name (defaults to weekly_hours_<week-start>.xlsx)")
	weeklyCmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory the workbook is written to")
	weeklyCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing workbook")
	reportCmd.AddCommand(weeklyCmd)

	return reportCmd
}
