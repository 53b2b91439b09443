package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/application/user/dto"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/interfaces/http/middleware"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
	"github.com/myphoto-inc/myphoto/internal/shared/constants"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

type AuthHandler struct {
	accounts     accountService
	sessions     sessionIssuer
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewAuthHandler(
	accounts accountService,
	sessions sessionIssuer,
	cookieConfig config.CookieConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		accounts:     accounts,
		sessions:     sessions,
		cookieConfig: cookieConfig,
		logger:       logger,
	}
}

// CheckUsers reports whether an account exists. A failed lookup reports true
// so that signup stays closed.
func (h *AuthHandler) CheckUsers(c *gin.Context) {
	hasUsers, err := h.accounts.HasUsers(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to count users", "error", err)
		hasUsers = true
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.CheckUsersResponse{HasUsers: hasUsers})
}

// Signup creates the first account and signs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	newUser, err := h.accounts.Signup(c.Request.Context(), req.Username, req.Name, req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !h.startSession(c, newUser) {
		return
	}

	utils.CreatedResponse(c, dto.AuthResponse{User: newUser.Projection()}, "signup successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	authenticated, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !h.startSession(c, authenticated) {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", dto.AuthResponse{User: authenticated.Projection()})
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := utils.GetSessionToken(c, h.cookieConfig)
	if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
		h.logger.Errorw("failed to revoke session", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearSessionCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	resolved, ok := middleware.GetResolvedSession(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.AuthResponse{User: resolved.User})
}

// startSession issues a session cookie for u. It writes the error response
// itself and reports false on failure.
func (h *AuthHandler) startSession(c *gin.Context, u *user.User) bool {
	token, err := h.sessions.Create(c.Request.Context(), u.ID())
	if err != nil {
		h.logger.Errorw("failed to create session", "user_id", u.ID(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return false
	}

	utils.SetSessionCookie(c, h.cookieConfig, token, h.sessions.TTL())
	return true
}
