package store

import (
	"context"
)

// Grade is the object representing one exam result for a student in a subject.
type Grade struct {
	ID int32

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	StudentID int32
	SubjectID int32
	Exam      string
	Marks     float64
}

// FindGrade is the find condition for grade.
type FindGrade struct {
	ID        *int32
	StudentID *int32
	SubjectID *int32
	Exam      *string
}

// UpdateGrade is the update request for grade.
type UpdateGrade struct {
	ID int32

	UpdatedTs *int64
	Exam      *string
	Marks     *float64
}

// DeleteGrade is the delete request for grade.
type DeleteGrade struct {
	ID int32
}

// CreateGrade creates a new grade.
func (s *Store) CreateGrade(ctx context.Context, create *Grade) (*Grade, error) {
	return s.driver.CreateGrade(ctx, create)
}

// ListGrades lists grades with filter.
func (s *Store) ListGrades(ctx context.Context, find *FindGrade) ([]*Grade, error) {
	return s.driver.ListGrades(ctx, find)
}

// UpdateGrade updates a grade.
func (s *Store) UpdateGrade(ctx context.Context, update *UpdateGrade) (*Grade, error) {
	return s.driver.UpdateGrade(ctx, update)
}

// DeleteGrade deletes a grade.
func (s *Store) DeleteGrade(ctx context.Context, delete *DeleteGrade) error {
	return s.driver.DeleteGrade(ctx, delete)
}
