package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/interfaces/http/handlers"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	PasskeyHandler *handlers.PasskeyHandler
	LoginLimit     gin.HandlerFunc
}

// SetupAuthRoutes configures /api/auth. Session checks are done by the access gate.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.GET("/check-users", cfg.AuthHandler.CheckUsers)
		auth.POST("/signup", cfg.LoginLimit, cfg.AuthHandler.Signup)
		auth.POST("/login", cfg.LoginLimit, cfg.AuthHandler.Login)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthHandler.Me)

		webauthn := auth.Group("/webauthn")
		webauthn.POST("/register-options", cfg.PasskeyHandler.RegisterOptions)
		webauthn.POST("/register-verify", cfg.PasskeyHandler.RegisterVerify)
		webauthn.POST("/auth-options", cfg.LoginLimit, cfg.PasskeyHandler.AuthOptions)
		webauthn.POST("/auth-verify", cfg.LoginLimit, cfg.PasskeyHandler.AuthVerify)
	}
}
