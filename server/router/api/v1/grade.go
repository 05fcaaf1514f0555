package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classtrack/classtrack/store"
)

type gradeResponse struct {
	ID        int32   `json:"id"`
	StudentID int32   `json:"studentId"`
	SubjectID int32   `json:"subjectId"`
	Exam      string  `json:"exam"`
	Marks     float64 `json:"marks"`
	CreatedTs int64   `json:"createdTs"`
}

func convertGrade(grade *store.Grade) *gradeResponse {
	return &gradeResponse{
		ID:        grade.ID,
		StudentID: grade.StudentID,
		SubjectID: grade.SubjectID,
		Exam:      grade.Exam,
		Marks:     grade.Marks,
		CreatedTs: grade.CreatedTs,
	}
}

type createGradeRequest struct {
	StudentID int32   `json:"studentId"`
	SubjectID int32   `json:"subjectId"`
	Exam      string  `json:"exam"`
	Marks     float64 `json:"marks"`
}

// CreateGrade records an exam result for a student in a subject.
func (s *APIV1Service) CreateGrade(c echo.Context) error {
	ctx := c.Request().Context()
	var req createGradeRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed create request")
	}
	if req.Exam == "" {
		return invalidArgument(c, "exam is required")
	}
	if req.Marks < 0 || req.Marks > 100 {
		return invalidArgument(c, "marks must be within [0,100]")
	}
	student, err := s.Store.GetStudent(ctx, &store.FindStudent{ID: &req.StudentID})
	if err != nil {
		return errorResponse(c, err)
	}
	if student == nil {
		return notFound(c, "student not found")
	}
	subject, err := s.Store.GetSubject(ctx, &store.FindSubject{ID: &req.SubjectID})
	if err != nil {
		return errorResponse(c, err)
	}
	if subject == nil {
		return notFound(c, "subject not found")
	}

	grade, err := s.Store.CreateGrade(ctx, &store.Grade{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Exam:      req.Exam,
		Marks:     req.Marks,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertGrade(grade))
}

// ListGrades returns grades filtered by student, subject or exam.
func (s *APIV1Service) ListGrades(c echo.Context) error {
	ctx := c.Request().Context()
	find := &store.FindGrade{}
	if raw := c.QueryParam("studentId"); raw != "" {
		studentID, err := parseID(raw)
		if err != nil {
			return invalidArgument(c, "invalid studentId")
		}
		find.StudentID = &studentID
	}
	if raw := c.QueryParam("subjectId"); raw != "" {
		subjectID, err := parseID(raw)
		if err != nil {
			return invalidArgument(c, "invalid subjectId")
		}
		find.SubjectID = &subjectID
	}
	if exam := c.QueryParam("exam"); exam != "" {
		find.Exam = &exam
	}
	grades, err := s.Store.ListGrades(ctx, find)
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*gradeResponse, 0, len(grades))
	for _, grade := range grades {
		list = append(list, convertGrade(grade))
	}
	return c.JSON(http.StatusOK, list)
}

type updateGradeRequest struct {
	Exam  *string  `json:"exam"`
	Marks *float64 `json:"marks"`
}

// UpdateGrade corrects an exam result.
func (s *APIV1Service) UpdateGrade(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var req updateGradeRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed update request")
	}
	if req.Marks != nil && (*req.Marks < 0 || *req.Marks > 100) {
		return invalidArgument(c, "marks must be within [0,100]")
	}
	grade, err := s.Store.UpdateGrade(ctx, &store.UpdateGrade{
		ID:    id,
		Exam:  req.Exam,
		Marks: req.Marks,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertGrade(grade))
}

// DeleteGrade removes an exam result.
func (s *APIV1Service) DeleteGrade(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteGrade(ctx, &store.DeleteGrade{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
