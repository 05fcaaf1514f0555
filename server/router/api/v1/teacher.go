package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/classtrack/classtrack/store"
)

type teacherResponse struct {
	ID         int32   `json:"id"`
	UID        string  `json:"uid"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	WeeklyLoad float64 `json:"weeklyLoad"`
	CreatedTs  int64   `json:"createdTs"`
	UpdatedTs  int64   `json:"updatedTs"`
}

func convertTeacher(teacher *store.Teacher) *teacherResponse {
	return &teacherResponse{
		ID:         teacher.ID,
		UID:        teacher.UID,
		Name:       teacher.Name,
		Email:      teacher.Email,
		WeeklyLoad: teacher.WeeklyLoad,
		CreatedTs:  teacher.CreatedTs,
		UpdatedTs:  teacher.UpdatedTs,
	}
}

type createTeacherRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateTeacher creates a teacher record.
func (s *APIV1Service) CreateTeacher(c echo.Context) error {
	ctx := c.Request().Context()
	var req createTeacherRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed create request")
	}
	if req.Name == "" {
		return invalidArgument(c, "name is required")
	}
	teacher, err := s.Store.CreateTeacher(ctx, &store.Teacher{
		UID:   shortuuid.New(),
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertTeacher(teacher))
}

// ListTeachers returns all teachers.
func (s *APIV1Service) ListTeachers(c echo.Context) error {
	ctx := c.Request().Context()
	teachers, err := s.Store.ListTeachers(ctx, &store.FindTeacher{})
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*teacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		list = append(list, convertTeacher(teacher))
	}
	return c.JSON(http.StatusOK, list)
}

// GetTeacher returns one teacher by ID.
func (s *APIV1Service) GetTeacher(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	teacher, err := s.Store.GetTeacher(ctx, &store.FindTeacher{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if teacher == nil {
		return notFound(c, "teacher not found")
	}
	return c.JSON(http.StatusOK, convertTeacher(teacher))
}

type updateTeacherRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateTeacher updates a teacher's profile fields. The cached weekly load
// is owned by the schedule service and cannot be set over the API.
func (s *APIV1Service) UpdateTeacher(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var req updateTeacherRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed update request")
	}
	teacher, err := s.Store.UpdateTeacher(ctx, &store.UpdateTeacher{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertTeacher(teacher))
}

// DeleteTeacher removes a teacher.
func (s *APIV1Service) DeleteTeacher(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteTeacher(ctx, &store.DeleteTeacher{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTeacherLoad returns the teacher's freshly aggregated load summary.
func (s *APIV1Service) GetTeacherLoad(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	teacher, err := s.Store.GetTeacher(ctx, &store.FindTeacher{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if teacher == nil {
		return notFound(c, "teacher not found")
	}
	summary, err := s.ScheduleService.AggregateLoad(ctx, id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// CheckTeacherLoad is a dry-run cap check: ?hours= additional weekly hours.
func (s *APIV1Service) CheckTeacherLoad(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	hours, err := strconv.ParseFloat(c.QueryParam("hours"), 64)
	if err != nil || hours < 0 {
		return invalidArgument(c, "hours must be a non-negative number")
	}
	teacher, err := s.Store.GetTeacher(ctx, &store.FindTeacher{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if teacher == nil {
		return notFound(c, "teacher not found")
	}
	decision, err := s.ScheduleService.CanAssign(ctx, id, hours)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, decision)
}
