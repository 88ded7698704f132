package api

import (
	"net/http"

	"gamelog_daily/internal/middleware"
	"gamelog_daily/pkg/auth"

	"github.com/gin-gonic/gin"
)

type userRoutes struct{}

func NewUserRoutes(handler *gin.RouterGroup, a *auth.TelegramAuth, authz *middleware.Authorization) {
	r := &userRoutes{}
	h := handler.Group("/users")
	h.Use(a.TelegramAuthMiddleware(), authz.RequireUser())
	{
		h.GET("/me", r.GetMe)
	}
}

func (r *userRoutes) GetMe(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, user)
}
