package controller

import (
	"errors"
	"time"

	"github.com/steveiliop56/tinynotion/internal/service"
	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/gin-gonic/gin"
)

type OAuthURLResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

type ValidateResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Active  *bool  `json:"active,omitempty"`
}

type OAuthControllerConfig struct {
	CSRFCookieName string
	SecureCookie   bool
}

type OAuthController struct {
	config  OAuthControllerConfig
	router  *gin.RouterGroup
	notion  *service.NotionOAuthService
	session *service.SessionService
}

func NewOAuthController(config OAuthControllerConfig, router *gin.RouterGroup, notion *service.NotionOAuthService, session *service.SessionService) *OAuthController {
	return &OAuthController{
		config:  config,
		router:  router,
		notion:  notion,
		session: session,
	}
}

func (controller *OAuthController) SetupRoutes() {
	oauthGroup := controller.router.Group("/oauth")
	oauthGroup.GET("/url", controller.oauthURLHandler)
	oauthGroup.GET("/callback", controller.oauthCallbackHandler)
	oauthGroup.POST("/validate", controller.validateHandler)
	oauthGroup.POST("/logout", controller.logoutHandler)
}

func (controller *OAuthController) oauthURLHandler(c *gin.Context) {
	state := controller.notion.GenerateState()
	authURL, err := controller.notion.GetAuthURL(state)

	if err != nil {
		utils.Log.App.Error().Err(err).Msg("Failed to build auth URL")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.SetCookie(controller.config.CSRFCookieName, state, int(time.Hour.Seconds()), "/", "", controller.config.SecureCookie, true)

	c.JSON(200, OAuthURLResponse{
		Status:  200,
		Message: "OK",
		URL:     authURL,
	})
}

func (controller *OAuthController) oauthCallbackHandler(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		utils.Log.App.Warn().Str("error", providerErr).Msg("Notion returned an authorization error")
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Authorization denied",
		})
		return
	}

	state := c.Query("state")
	csrfCookie, err := c.Cookie(controller.config.CSRFCookieName)

	if err != nil || state != csrfCookie {
		utils.Log.App.Warn().Err(err).Msg("CSRF token mismatch or cookie missing")
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Bad Request",
		})
		return
	}

	c.SetCookie(controller.config.CSRFCookieName, "", -1, "/", "", controller.config.SecureCookie, true)

	code := c.Query("code")

	if code == "" {
		utils.Log.App.Warn().Msg("Callback without authorization code")
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Bad Request",
		})
		return
	}

	_, err = controller.session.Login(c.Request.Context(), code)

	if errors.Is(err, service.ErrNoToken) {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	if err != nil {
		utils.Log.App.Error().Err(err).Msg("Failed to log in with Notion")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	user, err := controller.session.CurrentUser(c.Request.Context())

	if err != nil {
		utils.Log.App.Error().Err(err).Msg("Failed to get user after login")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(200, UserResponse{
		Status:  200,
		Message: "Logged in",
		User:    user,
	})
}

func (controller *OAuthController) validateHandler(c *gin.Context) {
	active, err := controller.session.Validate(c.Request.Context())

	if errors.Is(err, service.ErrNoSession) {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	if err != nil {
		utils.Log.App.Error().Err(err).Msg("Failed to validate token")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	if active == nil {
		c.JSON(502, gin.H{
			"status":  502,
			"message": "Unable to validate token",
		})
		return
	}

	c.JSON(200, ValidateResponse{
		Status:  200,
		Message: "OK",
		Active:  active,
	})
}

func (controller *OAuthController) logoutHandler(c *gin.Context) {
	err := controller.session.Logout(c.Request.Context())

	if errors.Is(err, service.ErrNoSession) {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	if errors.Is(err, service.ErrRevokeFailed) {
		c.JSON(502, gin.H{
			"status":  502,
			"message": "Unable to revoke token",
		})
		return
	}

	if err != nil {
		utils.Log.App.Error().Err(err).Msg("Failed to log out")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  200,
		"message": "Logged out",
	})
}
