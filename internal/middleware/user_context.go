package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserRoleKey  = "user_role"
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"

	RoleAdmin = "ADMIN"
)

// ExtractUserContext lê os headers injetados pelo gateway depois de validar o JWT:
// - X-User-ID: ID do usuário (sub no JWT)
// - X-User-Role: ADMIN para administradores do marketplace, senão USER
// - X-User-Email: email do usuário
func ExtractUserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(UserIDKey, userID)
		}
		if role := c.GetHeader("X-User-Role"); role != "" {
			c.Set(UserRoleKey, strings.ToUpper(strings.TrimSpace(role)))
		}
		if email := c.GetHeader("X-User-Email"); email != "" {
			c.Set(UserEmailKey, email)
		}
		c.Next()
	}
}

func getString(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserRole retorna o role do usuário (ADMIN ou USER)
func GetUserRole(c *gin.Context) string { return getString(c, UserRoleKey) }

// GetUserID retorna o ID único do usuário
func GetUserID(c *gin.Context) string { return getString(c, UserIDKey) }

// GetUserEmail retorna o email do usuário
func GetUserEmail(c *gin.Context) string { return getString(c, UserEmailKey) }

// IsAdmin verifica se o usuário tem role ADMIN
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == RoleAdmin
}

// RequireRole middleware que verifica se o usuário tem uma das roles necessárias
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRole(c)
		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":          "Acesso negado: permissão insuficiente",
			"roles_required": roles,
		})
	}
}
