package utils

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/shared/config"
)

// SetSessionCookie stores the session token as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	c.SetSameSite(cfg.GetSameSite())
	c.SetCookie(cfg.Name, token, int(ttl.Seconds()), cfg.Path, cfg.Domain, cfg.Secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(cfg.GetSameSite())
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}

// GetSessionToken returns the session token from the request cookie, or "".
func GetSessionToken(c *gin.Context, cfg config.CookieConfig) string {
	token, err := c.Cookie(cfg.Name)
	if err != nil {
		return ""
	}
	return token
}
