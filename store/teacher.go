package store

import (
	"context"
)

// Teacher is the object representing a member of teaching staff.
type Teacher struct {
	// ID is the system generated unique identifier for the teacher.
	ID int32
	// UID is the user visible short identifier for the teacher.
	UID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	Name  string
	Email string
	// WeeklyLoad is the cached weekly teaching hours, recomputed and persisted
	// after every accepted schedule mutation that touches this teacher.
	WeeklyLoad float64
}

// FindTeacher is the find condition for teacher.
type FindTeacher struct {
	ID  *int32
	UID *string
	IDs []int32
}

// UpdateTeacher is the update request for teacher.
type UpdateTeacher struct {
	ID int32

	UpdatedTs  *int64
	Name       *string
	Email      *string
	WeeklyLoad *float64
}

// DeleteTeacher is the delete request for teacher.
type DeleteTeacher struct {
	ID int32
}

// CreateTeacher creates a new teacher.
func (s *Store) CreateTeacher(ctx context.Context, create *Teacher) (*Teacher, error) {
	teacher, err := s.driver.CreateTeacher(ctx, create)
	if err != nil {
		return nil, err
	}
	s.teacherCache.Set(ctx, teacherCacheKey(teacher.ID), teacher)
	return teacher, nil
}

// ListTeachers lists teachers with filter.
func (s *Store) ListTeachers(ctx context.Context, find *FindTeacher) ([]*Teacher, error) {
	return s.driver.ListTeachers(ctx, find)
}

// GetTeacher gets a single teacher with filter, nil when not found.
func (s *Store) GetTeacher(ctx context.Context, find *FindTeacher) (*Teacher, error) {
	if find.ID != nil {
		if cached, ok := s.teacherCache.Get(ctx, teacherCacheKey(*find.ID)); ok {
			if teacher, ok := cached.(*Teacher); ok {
				return teacher, nil
			}
		}
	}

	list, err := s.driver.ListTeachers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	teacher := list[0]
	s.teacherCache.Set(ctx, teacherCacheKey(teacher.ID), teacher)
	return teacher, nil
}

// UpdateTeacher updates a teacher. The cached entry is dropped rather than
// replaced so readers always see the driver's view after a load recompute.
func (s *Store) UpdateTeacher(ctx context.Context, update *UpdateTeacher) (*Teacher, error) {
	teacher, err := s.driver.UpdateTeacher(ctx, update)
	if err != nil {
		return nil, err
	}
	s.teacherCache.Delete(ctx, teacherCacheKey(update.ID))
	return teacher, nil
}

// DeleteTeacher deletes a teacher and its subject assignments.
func (s *Store) DeleteTeacher(ctx context.Context, delete *DeleteTeacher) error {
	if err := s.driver.DeleteTeacher(ctx, delete); err != nil {
		return err
	}
	s.teacherCache.Delete(ctx, teacherCacheKey(delete.ID))
	s.subjectCache.Clear(ctx)
	return nil
}
