package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/classtrack/classtrack/server/auth"
	"github.com/classtrack/classtrack/store"
)

type messageResponse struct {
	ID            int32  `json:"id"`
	UID           string `json:"uid"`
	SenderID      int32  `json:"senderId"`
	RecipientRole string `json:"recipientRole"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	CreatedTs     int64  `json:"createdTs"`
}

func convertMessage(message *store.Message) *messageResponse {
	return &messageResponse{
		ID:            message.ID,
		UID:           message.UID,
		SenderID:      message.SenderID,
		RecipientRole: message.RecipientRole.String(),
		Subject:       message.Subject,
		Body:          message.Body,
		CreatedTs:     message.CreatedTs,
	}
}

type createMessageRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CreateMessage sends a message to the administration. Any authenticated
// account can write; only admins read the inbox.
func (s *APIV1Service) CreateMessage(c echo.Context) error {
	ctx := c.Request().Context()
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed create request")
	}
	if req.Subject == "" || req.Body == "" {
		return invalidArgument(c, "subject and body are required")
	}
	user := auth.UserFromContext(ctx)
	message, err := s.Store.CreateMessage(ctx, &store.Message{
		UID:           shortuuid.New(),
		SenderID:      user.ID,
		RecipientRole: store.RoleAdmin,
		Subject:       req.Subject,
		Body:          req.Body,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertMessage(message))
}

// ListMessages returns the admin inbox, newest first.
func (s *APIV1Service) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()
	admin := store.RoleAdmin
	messages, err := s.Store.ListMessages(ctx, &store.FindMessage{RecipientRole: &admin})
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*messageResponse, 0, len(messages))
	for _, message := range messages {
		list = append(list, convertMessage(message))
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteMessage removes a message from the inbox.
func (s *APIV1Service) DeleteMessage(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteMessage(ctx, &store.DeleteMessage{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
