package http

import (
	"context"
	"net/http"
	"strings"

	mw "creditsea-backend/internal/adapter/middleware"
	"creditsea-backend/internal/usecase/admin"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *admin.Usecase }

func NewAdminHandler(uc *admin.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

type approveReq struct {
	Status string `json:"status" validate:"required"`
}

// Approve records an APPROVED/REJECTED decision. It does not create a loan;
// funding is a separate call (POST /loan/approve/:appId).
func (h *AdminHandler) Approve(c echo.Context) error {
	adminID := mw.UserID(c)
	if adminID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized: Admin ID is missing"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid status. Use 'APPROVED' or 'REJECTED'"})
	}
	if err := h.uc.Approve(c.Request().Context(), adminID, c.Param("id"), req.Status); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Application " + strings.ToLower(req.Status) + " successfully",
	})
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "All users retrieved",
		"users":   users,
	})
}

func (h *AdminHandler) roleChange(c echo.Context, apply func(ctx context.Context, userID string) error, okMsg string) error {
	if err := apply(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": okMsg})
}

func (h *AdminHandler) MakeAdmin(c echo.Context) error {
	return h.roleChange(c, h.uc.MakeAdmin, "User promoted to Admin")
}

func (h *AdminHandler) RemoveAdmin(c echo.Context) error {
	return h.roleChange(c, h.uc.RemoveAdmin, "Admin privileges removed")
}

func (h *AdminHandler) MakeVerifier(c echo.Context) error {
	return h.roleChange(c, h.uc.MakeVerifier, "User promoted to Verifier")
}

func (h *AdminHandler) RemoveVerifier(c echo.Context) error {
	return h.roleChange(c, h.uc.RemoveVerifier, "Verifier privileges removed")
}

func (h *AdminHandler) MakeUser(c echo.Context) error {
	return h.roleChange(c, h.uc.MakeUser, "User role set to User")
}
