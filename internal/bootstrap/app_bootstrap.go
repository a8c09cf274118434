package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/steveiliop56/tinynotion/internal/config"
	"github.com/steveiliop56/tinynotion/internal/repository"
	"github.com/steveiliop56/tinynotion/internal/service"
	"github.com/steveiliop56/tinynotion/internal/utils"
)

type BootstrapApp struct {
	config  config.Config
	context struct {
		notion config.NotionConfig
	}
	db       *sql.DB
	services Services
}

func NewBootstrapApp(config config.Config) *BootstrapApp {
	return &BootstrapApp{
		config: config,
	}
}

// Init resolves secrets, opens the database and creates the services
func (app *BootstrapApp) Init() error {
	// Notion credentials
	notion := app.config.Notion
	notion.ClientSecret = utils.GetSecret(notion.ClientSecret, notion.ClientSecretFile)
	notion.ClientSecretFile = ""

	if notion.ClientID == "" || notion.ClientSecret == "" || notion.RedirectURL == "" {
		return errors.New("notion client id, client secret and redirect url must be configured")
	}

	app.context.notion = notion

	// Dumps
	utils.Log.App.Trace().Str("databasePath", app.config.DatabasePath).Msg("Database path")
	utils.Log.App.Trace().Str("clientId", notion.ClientID).Str("redirectUrl", notion.RedirectURL).Msg("Notion config")

	// Database
	db, err := app.SetupDatabase(app.config.DatabasePath)

	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	app.db = db

	// Queries
	queries := repository.New(db)

	// Services
	services, err := app.initServices(queries)

	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	app.services = services

	return nil
}

func (app *BootstrapApp) Setup() error {
	err := app.Init()

	if err != nil {
		return err
	}

	defer app.Close()

	// Setup router
	router, err := app.SetupRouter()

	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	// Start server
	address := fmt.Sprintf("%s:%d", app.config.Server.Address, app.config.Server.Port)
	utils.Log.App.Info().Msgf("Starting server on %s", address)

	if err := router.Run(address); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (app *BootstrapApp) NotionOAuthService() *service.NotionOAuthService {
	return app.services.notionOAuthService
}

func (app *BootstrapApp) SessionService() *service.SessionService {
	return app.services.sessionService
}

func (app *BootstrapApp) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
