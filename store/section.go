package store

import (
	"context"
)

// Section is the object representing a class section (a homeroom group of
// students following one schedule).
type Section struct {
	ID  int32
	UID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	Name       string
	GradeLevel string
}

// FindSection is the find condition for section.
type FindSection struct {
	ID         *int32
	UID        *string
	Name       *string
	GradeLevel *string
}

// UpdateSection is the update request for section.
type UpdateSection struct {
	ID int32

	UpdatedTs  *int64
	Name       *string
	GradeLevel *string
}

// DeleteSection is the delete request for section.
type DeleteSection struct {
	ID int32
}

// CreateSection creates a new section.
func (s *Store) CreateSection(ctx context.Context, create *Section) (*Section, error) {
	return s.driver.CreateSection(ctx, create)
}

// ListSections lists sections with filter.
func (s *Store) ListSections(ctx context.Context, find *FindSection) ([]*Section, error) {
	return s.driver.ListSections(ctx, find)
}

// GetSection gets a single section with filter, nil when not found.
func (s *Store) GetSection(ctx context.Context, find *FindSection) (*Section, error) {
	list, err := s.driver.ListSections(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateSection updates a section.
func (s *Store) UpdateSection(ctx context.Context, update *UpdateSection) (*Section, error) {
	return s.driver.UpdateSection(ctx, update)
}

// DeleteSection deletes a section together with its schedule.
func (s *Store) DeleteSection(ctx context.Context, delete *DeleteSection) error {
	return s.driver.DeleteSection(ctx, delete)
}
