package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/classtrack/classtrack/store"
)

type subjectResponse struct {
	ID         int32   `json:"id"`
	UID        string  `json:"uid"`
	Name       string  `json:"name"`
	GradeLevel string  `json:"gradeLevel"`
	TeacherIDs []int32 `json:"teacherIds"`
	CreatedTs  int64   `json:"createdTs"`
	UpdatedTs  int64   `json:"updatedTs"`
}

func convertSubject(subject *store.Subject) *subjectResponse {
	teacherIDs := subject.TeacherIDs
	if teacherIDs == nil {
		teacherIDs = []int32{}
	}
	return &subjectResponse{
		ID:         subject.ID,
		UID:        subject.UID,
		Name:       subject.Name,
		GradeLevel: subject.GradeLevel,
		TeacherIDs: teacherIDs,
		CreatedTs:  subject.CreatedTs,
		UpdatedTs:  subject.UpdatedTs,
	}
}

type createSubjectRequest struct {
	Name       string  `json:"name"`
	GradeLevel string  `json:"gradeLevel"`
	TeacherIDs []int32 `json:"teacherIds"`
}

// CreateSubject creates a subject with its teacher assignments.
func (s *APIV1Service) CreateSubject(c echo.Context) error {
	ctx := c.Request().Context()
	var req createSubjectRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed create request")
	}
	if req.Name == "" {
		return invalidArgument(c, "name is required")
	}
	if err := s.checkTeachersExist(c, req.TeacherIDs); err != nil {
		return err
	}
	subject, err := s.Store.CreateSubject(ctx, &store.Subject{
		UID:        shortuuid.New(),
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
		TeacherIDs: req.TeacherIDs,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSubject(subject))
}

// ListSubjects returns subjects, optionally filtered by teacher.
func (s *APIV1Service) ListSubjects(c echo.Context) error {
	ctx := c.Request().Context()
	find := &store.FindSubject{}
	if raw := c.QueryParam("teacherId"); raw != "" {
		teacherID, err := parseID(raw)
		if err != nil {
			return invalidArgument(c, "invalid teacherId")
		}
		find.TeacherID = &teacherID
	}
	subjects, err := s.Store.ListSubjects(ctx, find)
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*subjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		list = append(list, convertSubject(subject))
	}
	return c.JSON(http.StatusOK, list)
}

// GetSubject returns one subject by ID.
func (s *APIV1Service) GetSubject(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	subject, err := s.Store.GetSubject(ctx, &store.FindSubject{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if subject == nil {
		return notFound(c, "subject not found")
	}
	return c.JSON(http.StatusOK, convertSubject(subject))
}

type updateSubjectRequest struct {
	Name       *string `json:"name"`
	GradeLevel *string `json:"gradeLevel"`
	TeacherIDs []int32 `json:"teacherIds"`
}

// UpdateSubject updates a subject; a non-nil teacherIds replaces the whole
// assignment set.
func (s *APIV1Service) UpdateSubject(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var req updateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed update request")
	}
	if err := s.checkTeachersExist(c, req.TeacherIDs); err != nil {
		return err
	}
	subject, err := s.Store.UpdateSubject(ctx, &store.UpdateSubject{
		ID:         id,
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
		TeacherIDs: req.TeacherIDs,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSubject(subject))
}

// DeleteSubject removes a subject and its assignments.
func (s *APIV1Service) DeleteSubject(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteSubject(ctx, &store.DeleteSubject{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) checkTeachersExist(c echo.Context, teacherIDs []int32) error {
	if len(teacherIDs) == 0 {
		return nil
	}
	ctx := c.Request().Context()
	teachers, err := s.Store.ListTeachers(ctx, &store.FindTeacher{IDs: teacherIDs})
	if err != nil {
		return errorResponse(c, err)
	}
	known := make(map[int32]bool, len(teachers))
	for _, teacher := range teachers {
		known[teacher.ID] = true
	}
	for _, id := range teacherIDs {
		if !known[id] {
			return notFound(c, "teacher not found")
		}
	}
	return nil
}
