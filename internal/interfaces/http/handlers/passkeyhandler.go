package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-webauthn/webauthn/protocol"

	"github.com/myphoto-inc/myphoto/internal/application/user/dto"
	"github.com/myphoto-inc/myphoto/internal/application/user/usecases"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
	"github.com/myphoto-inc/myphoto/internal/shared/id"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/utils"
)

// maxCredentialBodyBytes bounds the credential JSON posted by the browser.
const maxCredentialBodyBytes = 64 << 10

type PasskeyHandler struct {
	startRegistrationUC   startRegistrationUseCase
	finishRegistrationUC  finishRegistrationUseCase
	startAuthenticationUC startAuthenticationUseCase
	finishAuthUC          finishAuthenticationUseCase
	listPasskeysUC        listPasskeysUseCase
	deletePasskeyUC       deletePasskeyUseCase
	sessions              sessionIssuer
	cookieConfig          config.CookieConfig
	logger                logger.Interface
}

func NewPasskeyHandler(
	startRegistrationUC startRegistrationUseCase,
	finishRegistrationUC finishRegistrationUseCase,
	startAuthenticationUC startAuthenticationUseCase,
	finishAuthUC finishAuthenticationUseCase,
	listPasskeysUC listPasskeysUseCase,
	deletePasskeyUC deletePasskeyUseCase,
	sessions sessionIssuer,
	cookieConfig config.CookieConfig,
	logger logger.Interface,
) *PasskeyHandler {
	return &PasskeyHandler{
		startRegistrationUC:   startRegistrationUC,
		finishRegistrationUC:  finishRegistrationUC,
		startAuthenticationUC: startAuthenticationUC,
		finishAuthUC:          finishAuthUC,
		listPasskeysUC:        listPasskeysUC,
		deletePasskeyUC:       deletePasskeyUC,
		sessions:              sessions,
		cookieConfig:          cookieConfig,
		logger:                logger,
	}
}

// registrationExtras are the fields sent next to the credential JSON.
type registrationExtras struct {
	DeviceName string `json:"device_name"`
}

// RegisterOptions returns PublicKeyCredentialCreationOptions for the signed-in user.
func (h *PasskeyHandler) RegisterOptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.startRegistrationUC.Execute(c.Request.Context(), usecases.StartPasskeyRegistrationCommand{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Options)
}

// RegisterVerify checks the attestation and stores the new passkey.
func (h *PasskeyHandler) RegisterVerify(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	body, ok := h.readCredentialBody(c)
	if !ok {
		return
	}

	parsed, err := protocol.ParseCredentialCreationResponseBody(bytes.NewReader(body))
	if err != nil {
		h.logger.Warnw("failed to parse credential creation response", "user_id", userID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid credential response")
		return
	}

	var extras registrationExtras
	if err := json.Unmarshal(body, &extras); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid credential response")
		return
	}

	result, err := h.finishRegistrationUC.Execute(c.Request.Context(), usecases.FinishPasskeyRegistrationCommand{
		UserID:     userID,
		Response:   parsed,
		DeviceName: extras.DeviceName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToPasskeyResponse(result.Credential), "passkey registered successfully")
}

// AuthOptions returns PublicKeyCredentialRequestOptions. The username is optional.
func (h *PasskeyHandler) AuthOptions(c *gin.Context) {
	var req dto.PasskeyAuthOptionsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := h.startAuthenticationUC.Execute(c.Request.Context(), usecases.StartPasskeyAuthenticationCommand{
		Username: req.Username,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Options)
}

// AuthVerify checks the assertion and starts a session.
func (h *PasskeyHandler) AuthVerify(c *gin.Context) {
	body, ok := h.readCredentialBody(c)
	if !ok {
		return
	}

	parsed, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(body))
	if err != nil {
		h.logger.Warnw("failed to parse credential assertion response", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid credential response")
		return
	}

	result, err := h.finishAuthUC.Execute(c.Request.Context(), usecases.FinishPasskeyAuthenticationCommand{
		Response: parsed,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), result.User.ID())
	if err != nil {
		h.logger.Errorw("failed to create session", "user_id", result.User.ID(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetSessionCookie(c, h.cookieConfig, token, h.sessions.TTL())
	utils.SuccessResponse(c, http.StatusOK, "login successful", dto.AuthResponse{User: result.User.Projection()})
}

func (h *PasskeyHandler) ListPasskeys(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.listPasskeysUC.Execute(c.Request.Context(), usecases.ListUserPasskeysCommand{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Passkeys)
}

func (h *PasskeyHandler) DeletePasskey(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	passkeySID := c.Param("id")
	if err := id.ValidateSID(passkeySID, id.PrefixPasskey); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid passkey ID format")
		return
	}

	if err := h.deletePasskeyUC.Execute(c.Request.Context(), usecases.DeletePasskeyCommand{
		UserID:     userID,
		PasskeySID: passkeySID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "passkey deleted successfully", nil)
}

func (h *PasskeyHandler) readCredentialBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxCredentialBodyBytes))
	if err != nil || len(body) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid credential response")
		return nil, false
	}
	return body, true
}
