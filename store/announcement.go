package store

import (
	"context"
)

// Announcement is the object representing a school wide notice. Content is
// stored as markdown and rendered to HTML at the API layer.
type Announcement struct {
	ID  int32
	UID string

	// Standard fields
	CreatorID int32
	CreatedTs int64
	UpdatedTs int64
	RowStatus RowStatus

	// Domain specific fields
	Title   string
	Content string
}

// FindAnnouncement is the find condition for announcement.
type FindAnnouncement struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	RowStatus *RowStatus
	Limit     *int
}

// UpdateAnnouncement is the update request for announcement.
type UpdateAnnouncement struct {
	ID int32

	UpdatedTs *int64
	RowStatus *RowStatus
	Title     *string
	Content   *string
}

// DeleteAnnouncement is the delete request for announcement.
type DeleteAnnouncement struct {
	ID int32
}

// CreateAnnouncement creates a new announcement.
func (s *Store) CreateAnnouncement(ctx context.Context, create *Announcement) (*Announcement, error) {
	return s.driver.CreateAnnouncement(ctx, create)
}

// ListAnnouncements lists announcements with filter, newest first.
func (s *Store) ListAnnouncements(ctx context.Context, find *FindAnnouncement) ([]*Announcement, error) {
	return s.driver.ListAnnouncements(ctx, find)
}

// GetAnnouncement gets a single announcement with filter, nil when not found.
func (s *Store) GetAnnouncement(ctx context.Context, find *FindAnnouncement) (*Announcement, error) {
	list, err := s.driver.ListAnnouncements(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateAnnouncement updates an announcement.
func (s *Store) UpdateAnnouncement(ctx context.Context, update *UpdateAnnouncement) (*Announcement, error) {
	return s.driver.UpdateAnnouncement(ctx, update)
}

// DeleteAnnouncement deletes an announcement.
func (s *Store) DeleteAnnouncement(ctx context.Context, delete *DeleteAnnouncement) error {
	return s.driver.DeleteAnnouncement(ctx, delete)
}
