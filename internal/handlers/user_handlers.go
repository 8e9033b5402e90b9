package handlers

import (
	"net/http"

	"usersvc/internal/logger"
	"usersvc/internal/models"
	"usersvc/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandlers handles user-related HTTP requests
type UserHandlers struct {
	userService services.UserService
	log         *zap.Logger
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userService services.UserService, log *zap.Logger) *UserHandlers {
	return &UserHandlers{
		userService: userService,
		log:         log,
	}
}

// CreateUserResponse is returned after a successful creation
type CreateUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// MessageResponse carries a plain success message
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateUsersRequest represents the bulk update payload
type UpdateUsersRequest struct {
	UserIDs    []string          `json:"user_ids"`
	UpdateData *models.UserPatch `json:"update_data"`
}

// CreateUser handles POST /create_user
func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req services.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	userID, err := h.userService.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateUserResponse{
		Message: "User created successfully.",
		UserID:  userID,
	})
}

// GetUsers handles POST /get_users
func (h *UserHandlers) GetUsers(c echo.Context) error {
	var filter models.UserFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	users, err := h.userService.FindUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

// DeleteUser handles POST /delete_user
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	var req services.DeleteUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.userService.DeleteUser(c.Request().Context(), &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully."})
}

// UpdateUsers handles POST /update_user. Per-user failures are logged and
// the response reports success regardless.
func (h *UserHandlers) UpdateUsers(c echo.Context) error {
	var req UpdateUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.userService.UpdateUsers(c.Request().Context(), req.UserIDs, req.UpdateData)
	if err != nil {
		return err
	}

	logger.FromEcho(c, h.log).Info("bulk user update finished",
		zap.String("operation_id", result.OperationID),
		zap.String("status", result.Status),
		zap.Int("total", result.TotalItems),
		zap.Int("failed", result.FailedItems),
	)

	return c.JSON(http.StatusOK, MessageResponse{Message: "Users updated successfully."})
}
