package bootstrap

import (
	"fmt"

	"github.com/steveiliop56/tinynotion/internal/config"
	"github.com/steveiliop56/tinynotion/internal/controller"
	"github.com/steveiliop56/tinynotion/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (app *BootstrapApp) SetupRouter() (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())

	zerologMiddleware := middleware.NewZerologMiddleware()

	err := zerologMiddleware.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize zerolog middleware: %w", err)
	}

	engine.Use(zerologMiddleware.Middleware())

	apiRouter := engine.Group("/api")

	oauthController := controller.NewOAuthController(controller.OAuthControllerConfig{
		CSRFCookieName: config.CSRFCookieName,
		SecureCookie:   app.config.Server.SecureCookie,
	}, apiRouter, app.services.notionOAuthService, app.services.sessionService)

	oauthController.SetupRoutes()

	userController := controller.NewUserController(apiRouter, app.services.sessionService)

	userController.SetupRoutes()

	healthController := controller.NewHealthController(apiRouter)

	healthController.SetupRoutes()

	return engine, nil
}
