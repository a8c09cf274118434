package bootstrap

import (
	"net/http"
	"time"

	"github.com/steveiliop56/tinynotion/internal/repository"
	"github.com/steveiliop56/tinynotion/internal/service"
)

type Services struct {
	notionOAuthService *service.NotionOAuthService
	sessionService     *service.SessionService
}

func (app *BootstrapApp) initServices(queries *repository.Queries) (Services, error) {
	services := Services{}

	httpClient := &http.Client{
		Timeout: time.Duration(app.config.Notion.Timeout) * time.Second,
	}

	notionOAuthService := service.NewNotionOAuthService(service.NotionOAuthServiceConfig{
		ClientID:      app.context.notion.ClientID,
		ClientSecret:  app.context.notion.ClientSecret,
		RedirectURL:   app.context.notion.RedirectURL,
		AuthURL:       app.context.notion.AuthURL,
		TokenURL:      app.context.notion.TokenURL,
		IntrospectURL: app.context.notion.IntrospectURL,
		RevokeURL:     app.context.notion.RevokeURL,
	}, httpClient, queries, queries)

	err := notionOAuthService.Init()

	if err != nil {
		return Services{}, err
	}

	services.notionOAuthService = notionOAuthService

	sessionService := service.NewSessionService(notionOAuthService, queries)

	err = sessionService.Init()

	if err != nil {
		return Services{}, err
	}

	services.sessionService = sessionService

	return services, nil
}
