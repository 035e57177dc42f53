package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
)

const (
	// ContextKeyAdmin is the Gin context key for the verified admin.
	ContextKeyAdmin = "admin"
	// ContextKeyUser is the Gin context key for the verified user.
	ContextKeyUser = "user"
	// ContextKeySession is the Gin context key for the verified session.
	ContextKeySession = "session"
)

// RequireAdminSession validates an admin bearer token from the
// Authorization header and stashes the admin + session in the context.
func RequireAdminSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, sess, err := authService.VerifyAdmin(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionExpired)
			return
		}
		c.Set(ContextKeyAdmin, admin)
		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// RequireAdminHeaderToken validates an admin token carried in the
// X-Admin-Token header. The user-management routes authenticate this
// way so a logged-in user's own bearer token can coexist in
// Authorization.
func RequireAdminHeaderToken(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, sess, err := authService.VerifyAdmin(c.Request.Context(), c.GetHeader("X-Admin-Token"))
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionExpired)
			return
		}
		c.Set(ContextKeyAdmin, admin)
		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// RequireUserSession validates a user bearer token from the
// Authorization header.
func RequireUserSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, sess, err := authService.VerifyUser(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionExpired)
			return
		}
		c.Set(ContextKeyUser, user)
		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// OptionalUserSession resolves a user bearer token when present but
// lets anonymous requests through. The AI explanation flow uses this to
// pick the quota regime.
func OptionalUserSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if user, sess, err := authService.VerifyUser(c.Request.Context(), header); err == nil {
				c.Set(ContextKeyUser, user)
				c.Set(ContextKeySession, sess)
			}
		}
		c.Next()
	}
}

// GetAdmin retrieves the verified admin from the Gin context.
func GetAdmin(c *gin.Context) *model.AdminUser {
	val, exists := c.Get(ContextKeyAdmin)
	if !exists {
		return nil
	}
	admin, ok := val.(*model.AdminUser)
	if !ok {
		return nil
	}
	return admin
}

// GetUser retrieves the verified user from the Gin context.
func GetUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}
