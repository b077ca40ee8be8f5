package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// UserHandler serves the admin user management endpoints.
type UserHandler struct {
	users ports.UserService
	log   zerolog.Logger
}

// NewUserHandler wires a UserHandler.
func NewUserHandler(users ports.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// ChangeRoleRequest is the PATCH /users/:id/role payload.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// List returns every account.
//
//	@Summary	List all accounts
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	domain.User
//	@Security	BearerAuth
//	@Router		/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.users.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ChangeRole reassigns an account's role.
//
//	@Summary	Change an account's role
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"user id"
//	@Param		request	body		ChangeRoleRequest	true	"new role"
//	@Success	200		{object}	domain.User
//	@Security	BearerAuth
//	@Router		/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.users.ChangeRole(c.Request().Context(), actor, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}

	h.log.Info().
		Str("actor_id", actor.ID).
		Str("user_id", updated.ID).
		Str("role", string(updated.Role)).
		Msg("user role changed")

	return c.JSON(http.StatusOK, updated)
}

// Approve marks an account as approved for order access.
//
//	@Summary	Approve an account
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"user id"
//	@Success	200	{object}	domain.User
//	@Security	BearerAuth
//	@Router		/users/{id}/approve [patch]
func (h *UserHandler) Approve(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	updated, err := h.users.Approve(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	h.log.Info().
		Str("actor_id", actor.ID).
		Str("user_id", updated.ID).
		Msg("user approved")

	return c.JSON(http.StatusOK, updated)
}

// ToggleActive flips an account's active flag.
//
//	@Summary	Toggle an account's active flag
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"user id"
//	@Success	200	{object}	domain.User
//	@Security	BearerAuth
//	@Router		/users/{id}/toggle-active [patch]
func (h *UserHandler) ToggleActive(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	updated, err := h.users.ToggleActive(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an account.
//
//	@Summary	Delete an account
//	@Tags		users
//	@Param		id	path	string	true	"user id"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	h.log.Info().
		Str("actor_id", actor.ID).
		Str("user_id", c.Param("id")).
		Msg("user deleted")

	return c.NoContent(http.StatusNoContent)
}
