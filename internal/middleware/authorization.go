package middleware

import (
	"errors"
	"net/http"

	"gamelog_daily/internal/model"
	"gamelog_daily/internal/service"
	"gamelog_daily/pkg/auth"
	"gamelog_daily/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userKey = "user"

// Authorization resolves the authenticated Telegram id into a known player.
type Authorization struct {
	userService service.UserServiceI
}

func NewAuthorization(userService service.UserServiceI) *Authorization {
	return &Authorization{
		userService: userService,
	}
}

// RequireUser aborts unless the caller is a known player.
func (a *Authorization) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		telegramUser, ok := auth.UserFromContext(c)
		if !ok {
			log.Error("telegram user data not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := a.userService.GetUserByID(c.Request.Context(), telegramUser.ID)
		if errors.Is(err, service.ErrUserNotFound) {
			log.Info("unknown user", zap.Int64("user_id", telegramUser.ID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			log.Error("failed to get user data", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalUser resolves the player when one is authenticated and known, and
// otherwise lets the request continue anonymously.
func (a *Authorization) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramUser, ok := auth.UserFromContext(c)
		if !ok {
			c.Next()
			return
		}

		user, err := a.userService.GetUserByID(c.Request.Context(), telegramUser.ID)
		switch {
		case err == nil:
			c.Set(userKey, user)
		case !errors.Is(err, service.ErrUserNotFound):
			logger.Logger().Warn("failed to resolve optional user",
				zap.Int64("user_id", telegramUser.ID), zap.Error(err))
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*model.User)
	return u, ok
}
