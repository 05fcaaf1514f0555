package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/classtrack/classtrack/store"
)

type studentResponse struct {
	ID        int32  `json:"id"`
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	SectionID int32  `json:"sectionId"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
}

func convertStudent(student *store.Student) *studentResponse {
	return &studentResponse{
		ID:        student.ID,
		UID:       student.UID,
		Name:      student.Name,
		Email:     student.Email,
		SectionID: student.SectionID,
		CreatedTs: student.CreatedTs,
		UpdatedTs: student.UpdatedTs,
	}
}

type createStudentRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	SectionID int32  `json:"sectionId"`
}

// CreateStudent enrolls a student into a section.
func (s *APIV1Service) CreateStudent(c echo.Context) error {
	ctx := c.Request().Context()
	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed create request")
	}
	if req.Name == "" {
		return invalidArgument(c, "name is required")
	}
	if req.SectionID > 0 {
		section, err := s.Store.GetSection(ctx, &store.FindSection{ID: &req.SectionID})
		if err != nil {
			return errorResponse(c, err)
		}
		if section == nil {
			return notFound(c, "section not found")
		}
	}
	student, err := s.Store.CreateStudent(ctx, &store.Student{
		UID:       shortuuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		SectionID: req.SectionID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertStudent(student))
}

// ListStudents returns students, optionally filtered by section.
func (s *APIV1Service) ListStudents(c echo.Context) error {
	ctx := c.Request().Context()
	find := &store.FindStudent{}
	if raw := c.QueryParam("sectionId"); raw != "" {
		sectionID, err := parseID(raw)
		if err != nil {
			return invalidArgument(c, "invalid sectionId")
		}
		find.SectionID = &sectionID
	}
	students, err := s.Store.ListStudents(ctx, find)
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*studentResponse, 0, len(students))
	for _, student := range students {
		list = append(list, convertStudent(student))
	}
	return c.JSON(http.StatusOK, list)
}

// GetStudent returns one student by ID.
func (s *APIV1Service) GetStudent(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	student, err := s.Store.GetStudent(ctx, &store.FindStudent{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if student == nil {
		return notFound(c, "student not found")
	}
	return c.JSON(http.StatusOK, convertStudent(student))
}

type updateStudentRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	SectionID *int32  `json:"sectionId"`
}

// UpdateStudent updates a student's profile or moves them between sections.
func (s *APIV1Service) UpdateStudent(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var req updateStudentRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed update request")
	}
	if req.SectionID != nil {
		section, err := s.Store.GetSection(ctx, &store.FindSection{ID: req.SectionID})
		if err != nil {
			return errorResponse(c, err)
		}
		if section == nil {
			return notFound(c, "section not found")
		}
	}
	student, err := s.Store.UpdateStudent(ctx, &store.UpdateStudent{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		SectionID: req.SectionID,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertStudent(student))
}

// DeleteStudent removes a student.
func (s *APIV1Service) DeleteStudent(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteStudent(ctx, &store.DeleteStudent{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
