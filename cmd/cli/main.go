package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/cmd/cli/commands"
	"github.com/jakechorley/basurapp/internal/config"
	"github.com/jakechorley/basurapp/pkg/core/services"
	"github.com/jakechorley/basurapp/pkg/db"
	"github.com/jakechorley/basurapp/pkg/postgres"
	"github.com/jakechorley/basurapp/pkg/utils/logging"
)

var (
	env     string
	app     = &commands.AppContext{}
	closeDB func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "basurapp",
		Short: "Basurapp CLI - Schedule waste pickups and track recycling points",
		Long: `A CLI for booking organic, inorganic and hazardous waste pickups in Bogotá,
managing their collection, and scoring citizens with recycling points.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.SchedulePickupCmd(app))
	rootCmd.AddCommand(commands.CheckPickupCmd(app))
	rootCmd.AddCommand(commands.EditPickupCmd(app))
	rootCmd.AddCommand(commands.AssignPickupCmd(app))
	rootCmd.AddCommand(commands.RejectPickupCmd(app))
	rootCmd.AddCommand(commands.CompletePickupCmd(app))
	rootCmd.AddCommand(commands.ArchivePickupCmd(app))
	rootCmd.AddCommand(commands.ListPickupsCmd(app))
	rootCmd.AddCommand(commands.CollectorPickupsCmd(app))
	rootCmd.AddCommand(commands.PointsCmd(app))
	rootCmd.AddCommand(commands.CollectorPointsCmd(app))
	rootCmd.AddCommand(commands.LeaderboardCmd(app))
	rootCmd.AddCommand(commands.PublishReportCmd(app))
	rootCmd.AddCommand(commands.OrganicDatesCmd(app))
	rootCmd.AddCommand(commands.ShowPolicyCmd(app))
	rootCmd.AddCommand(commands.SetBasePointsCmd(app))
	rootCmd.AddCommand(commands.SetWeightMultiplierCmd(app))
	rootCmd.AddCommand(commands.SetOrganicDayCmd(app))
	rootCmd.AddCommand(commands.SetInorganicLimitsCmd(app))
	rootCmd.AddCommand(commands.SetHazardousLimitsCmd(app))
	rootCmd.AddCommand(commands.SetHazardousCapacityCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		shutdown()
		os.Exit(1)
	}
}

// initApp sets up config, logger, the pickup store and the policy in force
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Location, err = app.Cfg.Location()
	if err != nil {
		return err
	}

	app.Logger.Info("Connecting to database", zap.String("driver", app.Cfg.Database.Driver))
	app.Database, closeDB, err = openDatabase(app.Ctx, app.Cfg.Database)
	if err != nil {
		return err
	}
	app.Logger.Debug("Database initialized successfully")

	app.Policy, err = services.LoadPolicy(app.Ctx, app.Database, app.Logger, app.Cfg.PolicySnapshot())
	if err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	return nil
}

// openDatabase opens the configured store and brings its schema up to date
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (db.Database, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := postgres.NewDB(ctx, cfg.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pg.RunMigrations(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return pg, pg.Close, nil
	default:
		sqlite, err := db.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return sqlite, func() { _ = sqlite.Close() }, nil
	}
}

func shutdown() {
	if closeDB != nil {
		closeDB()
		closeDB = nil
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}
