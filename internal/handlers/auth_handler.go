package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/services"
)

// AuthHandler handles login and logout requests.
type AuthHandler struct {
	sessionService services.SessionServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessionService services.SessionServicer) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles operator login.
// @Summary     Log in
// @Description Verify the operator credentials and issue a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} map[string]string "Session token"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.sessionService.Login(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": session.Token})
}

// CheckSession reports that the presented session token is still valid.
// The session middleware has already validated it by the time this runs.
// @Summary     Check session
// @Description Report whether the presented session token is still valid
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Success     200 {object} map[string]bool "Session status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/session [get]
func (h *AuthHandler) CheckSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// Logout handles operator logout.
// @Summary     Log out
// @Description Invalidate the active session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    SessionToken
// @Success     200 {object} MessageResponse "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
