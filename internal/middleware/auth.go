package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lijie8778708/DevConnector/internal/logger"
	"github.com/lijie8778708/DevConnector/internal/models"
	"github.com/lijie8778708/DevConnector/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// TokenHeader 携带会话 token 的请求头
	TokenHeader = "x-auth-token"
	// CurrentUserKey gin 上下文中保存 *models.User 的 key
	CurrentUserKey = "currentUser"
)

// tokenFromRequest 依次读取 x-auth-token、Authorization: Bearer、?token=
func tokenFromRequest(c *gin.Context) string {
	if tok := strings.TrimSpace(c.GetHeader(TokenHeader)); tok != "" {
		return tok
	}
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Query("token")
}

// AuthMiddleware 校验 token 并把当前用户放入上下文，服务端不保存会话
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "No token, authorization denied")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Token is not valid")
			c.Abort()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, "id = ?", claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Token is not valid")
			} else {
				logger.Log.WithError(err).Error("load token user")
				util.ServerError(c)
			}
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// CurrentUser 取出 AuthMiddleware 写入的用户
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
