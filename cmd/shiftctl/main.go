package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shift-report/shift-report-backend-go/internal/config"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/database"
	"github.com/shift-report/shift-report-backend-go/internal/repository/postgresql"
	personnelService "github.com/shift-report/shift-report-backend-go/internal/service/personnel"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shiftctl",
		Short:         "Operator tool for the shift report backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRosterCmd(),
		newReportCmd(),
		newResetCmd(),
		newAccessCodeCmd(),
	)
	return rootCmd
}

// backend is the database-backed state shared by the commands that need it.
type backend struct {
	cfg *config.Config
	db  *database.DB
}

func openBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.LoadForCLI()
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2})
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &backend{cfg: cfg, db: db}, nil
}

func (b *backend) Close() {
	b.db.Close()
}

func (b *backend) directory() personnel.Service {
	return personnelService.NewPersonnelService(
		postgresql.NewTransactor(b.db),
		postgresql.NewPersonnelRepository(b.db),
	)
}
