package controller

import (
	"errors"

	"github.com/steveiliop56/tinynotion/internal/model"
	"github.com/steveiliop56/tinynotion/internal/service"
	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

type UserController struct {
	router  *gin.RouterGroup
	session *service.SessionService
}

func NewUserController(router *gin.RouterGroup, session *service.SessionService) *UserController {
	return &UserController{
		router:  router,
		session: session,
	}
}

func (controller *UserController) SetupRoutes() {
	controller.router.GET("/user", controller.userHandler)
}

func (controller *UserController) userHandler(c *gin.Context) {
	user, err := controller.session.CurrentUser(c.Request.Context())

	if errors.Is(err, service.ErrNoSession) {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	if err != nil {
		utils.Log.App.Error().Err(err).Msg("Failed to get current user")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(200, UserResponse{
		Status:  200,
		Message: "OK",
		User:    user,
	})
}
