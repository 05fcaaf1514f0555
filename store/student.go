package store

import (
	"context"
)

// Student is the object representing an enrolled student.
type Student struct {
	ID  int32
	UID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	Name  string
	Email string
	// SectionID is the section the student is enrolled in, 0 when unassigned.
	SectionID int32
}

// FindStudent is the find condition for student.
type FindStudent struct {
	ID        *int32
	UID       *string
	SectionID *int32
}

// UpdateStudent is the update request for student.
type UpdateStudent struct {
	ID int32

	UpdatedTs *int64
	Name      *string
	Email     *string
	SectionID *int32
}

// DeleteStudent is the delete request for student.
type DeleteStudent struct {
	ID int32
}

// CreateStudent creates a new student.
func (s *Store) CreateStudent(ctx context.Context, create *Student) (*Student, error) {
	return s.driver.CreateStudent(ctx, create)
}

// ListStudents lists students with filter.
func (s *Store) ListStudents(ctx context.Context, find *FindStudent) ([]*Student, error) {
	return s.driver.ListStudents(ctx, find)
}

// GetStudent gets a single student with filter, nil when not found.
func (s *Store) GetStudent(ctx context.Context, find *FindStudent) (*Student, error) {
	list, err := s.driver.ListStudents(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateStudent updates a student.
func (s *Store) UpdateStudent(ctx context.Context, update *UpdateStudent) (*Student, error) {
	return s.driver.UpdateStudent(ctx, update)
}

// DeleteStudent deletes a student and their grades.
func (s *Store) DeleteStudent(ctx context.Context, delete *DeleteStudent) error {
	return s.driver.DeleteStudent(ctx, delete)
}
