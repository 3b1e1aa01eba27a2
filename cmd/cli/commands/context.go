package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/internal/config"
	"github.com/jakechorley/basurapp/pkg/clients/sheetsclient"
	"github.com/jakechorley/basurapp/pkg/core/policy"
	"github.com/jakechorley/basurapp/pkg/core/services"
	"github.com/jakechorley/basurapp/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Policy   *policy.Holder
	Location *time.Location
	Logger   *zap.Logger
	Ctx      context.Context

	publisherOnce sync.Once
	publisher     services.StandingsPublisher
	publisherErr  error
}

// ReportPublisher authorizes against Google Sheets on first use and returns the
// publisher for the configured report spreadsheet
func (app *AppContext) ReportPublisher() (services.StandingsPublisher, error) {
	app.publisherOnce.Do(func() {
		if app.Cfg.ReportSheetID == "" {
			app.publisherErr = fmt.Errorf("reportSheetID is not set in %s", config.ConfigFileName(app.Env))
			return
		}

		app.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
		if err != nil {
			app.publisherErr = fmt.Errorf("failed to load OAuth client config: %w", err)
			return
		}

		app.Logger.Info("Initializing sheets client")
		client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
		if err != nil {
			app.publisherErr = fmt.Errorf("failed to create sheets client: %w", err)
			return
		}

		app.publisher = sheetsclient.NewReportPublisher(client, app.Cfg.ReportSheetID)
	})

	return app.publisher, app.publisherErr
}
