package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"usersvc/internal/errors"
	"usersvc/internal/model"
	"usersvc/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.UserResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body model.UserRequest true "User payload"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	req, err := bindUserRequest(c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByEmail godoc
// @Summary Get user by email
// @Tags users
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/email [get]
func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "email query parameter is required",
			Code:  "INVALID_INPUT",
		})
	}
	user, err := h.svc.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body model.UserRequest true "User payload"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := bindUserRequest(c)
	if err != nil {
		return err
	}
	updated, err := h.svc.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return toHTTPError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseID rejects ids that are not integers. Ids below 1 are never assigned,
// so they are reported as not found.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_ID",
		})
	}
	if id <= 0 {
		return 0, toHTTPError(c, errors.UserNotFoundByID(id))
	}
	return uint(id), nil
}

func bindUserRequest(c echo.Context) (model.UserRequest, error) {
	var req model.UserRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_FAILED",
		})
	}
	return req, nil
}

// toHTTPError renders a service error. Server-side failures are logged.
func toHTTPError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
