package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classtrack/classtrack/server/auth"
	"github.com/classtrack/classtrack/store"
)

// ListUsers returns all accounts.
func (s *APIV1Service) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := s.Store.ListUsers(ctx, &store.FindUser{})
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*userResponse, 0, len(users))
	for _, user := range users {
		list = append(list, convertUser(user))
	}
	return c.JSON(http.StatusOK, list)
}

// GetUser returns one account by ID.
func (s *APIV1Service) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	user, err := s.Store.GetUser(ctx, &store.FindUser{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if user == nil {
		return notFound(c, "user not found")
	}
	return c.JSON(http.StatusOK, convertUser(user))
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	Nickname  *string `json:"nickname"`
	Password  *string `json:"password"`
	RowStatus *string `json:"rowStatus"`
}

// UpdateUser updates an account's profile, password or archival status.
func (s *APIV1Service) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed update request")
	}

	update := &store.UpdateUser{ID: id, Email: req.Email, Nickname: req.Nickname}
	if req.Password != nil {
		passwordHash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return errorResponse(c, err)
		}
		update.PasswordHash = &passwordHash
	}
	if req.RowStatus != nil {
		rowStatus := store.RowStatus(*req.RowStatus)
		if rowStatus != store.Normal && rowStatus != store.Archived {
			return invalidArgument(c, "rowStatus must be NORMAL or ARCHIVED")
		}
		update.RowStatus = &rowStatus
	}

	user, err := s.Store.UpdateUser(ctx, update)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertUser(user))
}

// DeleteUser removes an account.
func (s *APIV1Service) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteUser(ctx, &store.DeleteUser{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
