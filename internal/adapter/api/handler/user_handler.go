package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"complainhub/internal/usecase"
	"complainhub/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
	authUseCase *usecase.AuthUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, authUseCase *usecase.AuthUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		authUseCase: authUseCase,
	}
}

type signupRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required,min=2"`
	StudentID  string `json:"studentId"`
	Department string `json:"department"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type editUserRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

type blockUserRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		StudentID:  req.StudentID,
		Department: req.Department,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *UserHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *UserHandler) AdminLogin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
	})
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

// ListUsers returns all Firestore profiles, optionally narrowed by the
// search query.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUseCase.ListUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	if search := c.QueryParam("search"); search != "" {
		users = usecase.SearchUsers(users, search)
	}
	return response.Success(c, users)
}

// ListAuthUsers returns the provider-side account list, which includes
// accounts that never completed a profile.
func (h *UserHandler) ListAuthUsers(c echo.Context) error {
	users, err := h.userUseCase.ListAuthUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

func (h *UserHandler) EditUser(c echo.Context) error {
	id := c.Param("id")

	var req editUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userUseCase.EditUser(c.Request().Context(), id, req.Name, req.Department); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.GetByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) BlockUser(c echo.Context) error {
	id := c.Param("id")

	var req blockUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.BlockUser(c.Request().Context(), id, req.Reason); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "User blocked"})
}

func (h *UserHandler) UnblockUser(c echo.Context) error {
	id := c.Param("id")

	if err := h.userUseCase.UnblockUser(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "User unblocked"})
}
