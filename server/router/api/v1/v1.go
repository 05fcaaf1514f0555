// Package v1 is the JSON REST surface under /api/v1.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classtrack/classtrack/internal/profile"
	apierrors "github.com/classtrack/classtrack/server/internal/errors"
	"github.com/classtrack/classtrack/server/internal/observability"
	"github.com/classtrack/classtrack/server/middleware"
	"github.com/classtrack/classtrack/server/service/schedule"
	"github.com/classtrack/classtrack/server/stats"
	"github.com/classtrack/classtrack/store"
)

// APIV1Service wires the store and domain services into echo routes.
type APIV1Service struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	ScheduleService schedule.Service
	StatsCollector  *stats.Collector
}

// NewAPIV1Service creates the API service with its domain services.
func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store, collector *stats.Collector) *APIV1Service {
	return &APIV1Service{
		Secret:          secret,
		Profile:         profile,
		Store:           store,
		ScheduleService: schedule.NewService(store, profile.TeachingLoadCap),
		StatsCollector:  collector,
	}
}

// RegisterRoutes registers all /api/v1 routes on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	rootGroup := e.Group("/api/v1")

	// Public endpoints.
	rootGroup.POST("/auth/login", s.Login)
	rootGroup.GET("/announcements/feed.rss", s.AnnouncementFeed)

	secured := rootGroup.Group("", middleware.Authenticate(s.Store, s.Secret))
	admin := middleware.RequireRole(store.RoleAdmin)
	staff := middleware.RequireRole(store.RoleAdmin, store.RoleTeacher)

	secured.GET("/auth/me", s.Me)
	secured.POST("/auth/signup", s.Signup, admin)

	secured.GET("/users", s.ListUsers, admin)
	secured.GET("/users/:id", s.GetUser, admin)
	secured.PATCH("/users/:id", s.UpdateUser, admin)
	secured.DELETE("/users/:id", s.DeleteUser, admin)

	secured.POST("/teachers", s.CreateTeacher, admin)
	secured.GET("/teachers", s.ListTeachers)
	secured.GET("/teachers/:id", s.GetTeacher)
	secured.PATCH("/teachers/:id", s.UpdateTeacher, admin)
	secured.DELETE("/teachers/:id", s.DeleteTeacher, admin)
	secured.GET("/teachers/:id/load", s.GetTeacherLoad)
	secured.GET("/teachers/:id/load/check", s.CheckTeacherLoad, staff)

	secured.POST("/students", s.CreateStudent, admin)
	secured.GET("/students", s.ListStudents, staff)
	secured.GET("/students/:id", s.GetStudent)
	secured.PATCH("/students/:id", s.UpdateStudent, admin)
	secured.DELETE("/students/:id", s.DeleteStudent, admin)

	secured.POST("/subjects", s.CreateSubject, admin)
	secured.GET("/subjects", s.ListSubjects)
	secured.GET("/subjects/:id", s.GetSubject)
	secured.PATCH("/subjects/:id", s.UpdateSubject, admin)
	secured.DELETE("/subjects/:id", s.DeleteSubject, admin)

	secured.POST("/sections", s.CreateSection, admin)
	secured.GET("/sections", s.ListSections)
	secured.GET("/sections/:id", s.GetSection)
	secured.PATCH("/sections/:id", s.UpdateSection, admin)
	secured.DELETE("/sections/:id", s.DeleteSection, admin)

	// Schedule mutations all run through the load guard.
	secured.GET("/sections/:id/schedule", s.GetSchedule)
	secured.POST("/sections/:id/schedule", s.CreateSchedule, admin)
	secured.PUT("/sections/:id/schedule", s.ReplaceScheduleEntries, admin)
	secured.DELETE("/sections/:id/schedule", s.DeleteSchedule, admin)
	secured.POST("/sections/:id/schedule/entries", s.AddScheduleEntry, admin)
	secured.PUT("/sections/:id/schedule/entries/:index", s.UpdateScheduleEntry, admin)
	secured.DELETE("/sections/:id/schedule/entries/:index", s.RemoveScheduleEntry, admin)

	secured.POST("/grades", s.CreateGrade, staff)
	secured.GET("/grades", s.ListGrades)
	secured.PATCH("/grades/:id", s.UpdateGrade, staff)
	secured.DELETE("/grades/:id", s.DeleteGrade, staff)

	secured.POST("/announcements", s.CreateAnnouncement, admin)
	secured.GET("/announcements", s.ListAnnouncements)
	secured.GET("/announcements/:id", s.GetAnnouncement)
	secured.PATCH("/announcements/:id", s.UpdateAnnouncement, admin)
	secured.DELETE("/announcements/:id", s.DeleteAnnouncement, admin)

	secured.POST("/messages", s.CreateMessage)
	secured.GET("/messages", s.ListMessages, admin)
	secured.DELETE("/messages/:id", s.DeleteMessage, admin)

	secured.GET("/stats", s.GetStats, staff)
	secured.GET("/metrics", s.GetMetrics, admin)
}

// GetStats returns the latest school-wide statistics snapshot.
func (s *APIV1Service) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.StatsCollector.GetStats())
}

// GetMetrics returns the in-process request counters.
func (s *APIV1Service) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, observability.GlobalMetrics().Snapshot())
}

// errorResponse maps service errors onto HTTP statuses with the
// {"message": ...} body shape clients rely on.
func errorResponse(c echo.Context, err error) error {
	var capErr *schedule.CapError
	if errors.As(err, &capErr) {
		observability.GlobalMetrics().RecordCapRejection()
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": capErr.Error(),
			"code":    string(apierrors.ErrCodeLoadCapExceeded),
		})
	}

	switch {
	case errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, schedule.ErrEntryNotFound),
		errors.Is(err, schedule.ErrSubjectNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": err.Error(),
			"code":    string(apierrors.ErrCodeNotFound),
		})
	case errors.Is(err, schedule.ErrScheduleExists):
		return c.JSON(http.StatusConflict, map[string]string{
			"message": err.Error(),
			"code":    string(apierrors.ErrCodeConflict),
		})
	case errors.Is(err, schedule.ErrInvalidEntry),
		errors.Is(err, schedule.ErrInvalidTimeFormat):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
			"code":    string(apierrors.ErrCodeInvalidArgument),
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"message": "internal server error",
		"code":    string(apierrors.ErrCodeInternal),
	})
}

func invalidArgument(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{
		"message": message,
		"code":    string(apierrors.ErrCodeInvalidArgument),
	})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, map[string]string{
		"message": message,
		"code":    string(apierrors.ErrCodeNotFound),
	})
}
