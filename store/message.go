package store

import (
	"context"
)

// Message is the object representing a message sent by a user to a role
// mailbox (complaints and questions go to ADMIN, feedback to TEACHER).
type Message struct {
	ID  int32
	UID string

	// Standard fields
	CreatedTs int64

	// Domain specific fields
	SenderID      int32
	RecipientRole Role
	Subject       string
	Body          string
}

// FindMessage is the find condition for message.
type FindMessage struct {
	ID            *int32
	UID           *string
	SenderID      *int32
	RecipientRole *Role
	Limit         *int
}

// DeleteMessage is the delete request for message.
type DeleteMessage struct {
	ID int32
}

// CreateMessage creates a new message.
func (s *Store) CreateMessage(ctx context.Context, create *Message) (*Message, error) {
	return s.driver.CreateMessage(ctx, create)
}

// ListMessages lists messages with filter, newest first.
func (s *Store) ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error) {
	return s.driver.ListMessages(ctx, find)
}

// DeleteMessage deletes a message.
func (s *Store) DeleteMessage(ctx context.Context, delete *DeleteMessage) error {
	return s.driver.DeleteMessage(ctx, delete)
}
