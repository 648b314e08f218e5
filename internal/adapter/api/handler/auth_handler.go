package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"complainhub/internal/usecase"
	"complainhub/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type verifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyToken validates an ID token and returns the caller's profile,
// creating a default one when none exists yet.
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	var req verifyTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.VerifyToken(c.Request().Context(), req.Token)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// Logout exists for client symmetry; Firebase tokens are stateless, so the
// server has nothing to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, map[string]string{"message": "Logged out"})
}
