package store

import (
	"context"
)

// Subject is the object representing a taught subject. A subject may be
// co-taught, so it carries the full set of assigned teacher IDs.
type Subject struct {
	ID  int32
	UID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	Name       string
	GradeLevel string
	TeacherIDs []int32
}

// FindSubject is the find condition for subject.
type FindSubject struct {
	ID  *int32
	UID *string
	IDs []int32
	// TeacherID filters to subjects the teacher is assigned to.
	TeacherID  *int32
	GradeLevel *string
}

// UpdateSubject is the update request for subject. A non-nil TeacherIDs
// replaces the whole assignment set.
type UpdateSubject struct {
	ID int32

	UpdatedTs  *int64
	Name       *string
	GradeLevel *string
	TeacherIDs []int32
}

// DeleteSubject is the delete request for subject.
type DeleteSubject struct {
	ID int32
}

// CreateSubject creates a new subject with its teacher assignments.
func (s *Store) CreateSubject(ctx context.Context, create *Subject) (*Subject, error) {
	subject, err := s.driver.CreateSubject(ctx, create)
	if err != nil {
		return nil, err
	}
	s.subjectCache.Set(ctx, subjectCacheKey(subject.ID), subject)
	return subject, nil
}

// ListSubjects lists subjects with filter.
func (s *Store) ListSubjects(ctx context.Context, find *FindSubject) ([]*Subject, error) {
	return s.driver.ListSubjects(ctx, find)
}

// GetSubject gets a single subject with filter, nil when not found.
func (s *Store) GetSubject(ctx context.Context, find *FindSubject) (*Subject, error) {
	if find.ID != nil {
		if cached, ok := s.subjectCache.Get(ctx, subjectCacheKey(*find.ID)); ok {
			if subject, ok := cached.(*Subject); ok {
				return subject, nil
			}
		}
	}

	list, err := s.driver.ListSubjects(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	subject := list[0]
	s.subjectCache.Set(ctx, subjectCacheKey(subject.ID), subject)
	return subject, nil
}

// UpdateSubject updates a subject and its teacher assignments.
func (s *Store) UpdateSubject(ctx context.Context, update *UpdateSubject) (*Subject, error) {
	subject, err := s.driver.UpdateSubject(ctx, update)
	if err != nil {
		return nil, err
	}
	s.subjectCache.Delete(ctx, subjectCacheKey(update.ID))
	return subject, nil
}

// DeleteSubject deletes a subject, its teacher assignments and any schedule
// entries that reference it.
func (s *Store) DeleteSubject(ctx context.Context, delete *DeleteSubject) error {
	if err := s.driver.DeleteSubject(ctx, delete); err != nil {
		return err
	}
	s.subjectCache.Delete(ctx, subjectCacheKey(delete.ID))
	return nil
}
