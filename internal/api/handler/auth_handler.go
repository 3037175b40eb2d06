package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hockeyclub/club-system/internal/api/metrics"
	"github.com/hockeyclub/club-system/internal/core/domain"
	"github.com/hockeyclub/club-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Login authenticates a user and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	start := time.Now()
	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrAccountDisabled):
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: err.Error()})
		default:
			h.log.Error().Err(err).Str("email", req.Email).Msg("login failed unexpectedly")
			return c.JSON(http.StatusInternalServerError, messageResponse{Message: "internal server error"})
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token, User: user})
}

// Logout revokes the presented token when revocation is configured. It is
// best-effort by contract: the client clears its session regardless, so this
// endpoint never fails the caller.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := bearerToken(c.Request().Header.Get("Authorization"))
	if token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("token revocation failed")
		} else {
			metrics.TokensRevokedTotal.Inc()
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the user claims carried by the verified token. Used by the
// client to validate a rehydrated session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  messageResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(domain.Role)
	return c.JSON(http.StatusOK, map[string]string{
		"id":    userID,
		"email": email,
		"role":  string(role),
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "account_disabled"
	default:
		return "error"
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
