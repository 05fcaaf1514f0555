package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/classtrack/classtrack/store"
)

type sectionResponse struct {
	ID         int32  `json:"id"`
	UID        string `json:"uid"`
	Name       string `json:"name"`
	GradeLevel string `json:"gradeLevel"`
	CreatedTs  int64  `json:"createdTs"`
	UpdatedTs  int64  `json:"updatedTs"`
}

func convertSection(section *store.Section) *sectionResponse {
	return &sectionResponse{
		ID:         section.ID,
		UID:        section.UID,
		Name:       section.Name,
		GradeLevel: section.GradeLevel,
		CreatedTs:  section.CreatedTs,
		UpdatedTs:  section.UpdatedTs,
	}
}

type createSectionRequest struct {
	Name       string `json:"name"`
	GradeLevel string `json:"gradeLevel"`
}

// CreateSection creates a class section.
func (s *APIV1Service) CreateSection(c echo.Context) error {
	ctx := c.Request().Context()
	var req createSectionRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed create request")
	}
	if req.Name == "" {
		return invalidArgument(c, "name is required")
	}
	existing, err := s.Store.GetSection(ctx, &store.FindSection{Name: &req.Name})
	if err != nil {
		return errorResponse(c, err)
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, map[string]string{"message": "section name already taken"})
	}
	section, err := s.Store.CreateSection(ctx, &store.Section{
		UID:        shortuuid.New(),
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSection(section))
}

// ListSections returns all sections.
func (s *APIV1Service) ListSections(c echo.Context) error {
	ctx := c.Request().Context()
	sections, err := s.Store.ListSections(ctx, &store.FindSection{})
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*sectionResponse, 0, len(sections))
	for _, section := range sections {
		list = append(list, convertSection(section))
	}
	return c.JSON(http.StatusOK, list)
}

// GetSection returns one section by ID.
func (s *APIV1Service) GetSection(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	section, err := s.Store.GetSection(ctx, &store.FindSection{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if section == nil {
		return notFound(c, "section not found")
	}
	return c.JSON(http.StatusOK, convertSection(section))
}

type updateSectionRequest struct {
	Name       *string `json:"name"`
	GradeLevel *string `json:"gradeLevel"`
}

// UpdateSection updates a section.
func (s *APIV1Service) UpdateSection(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var req updateSectionRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed update request")
	}
	section, err := s.Store.UpdateSection(ctx, &store.UpdateSection{
		ID:         id,
		Name:       req.Name,
		GradeLevel: req.GradeLevel,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSection(section))
}

// DeleteSection removes a section and, via cascade, its schedule.
func (s *APIV1Service) DeleteSection(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteSection(ctx, &store.DeleteSection{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
