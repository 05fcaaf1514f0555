package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classtrack/classtrack/store"
)

type scheduleEntryPayload struct {
	SubjectID int32  `json:"subjectId"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (p *scheduleEntryPayload) toStore() *store.ScheduleEntry {
	return &store.ScheduleEntry{
		SubjectID: p.SubjectID,
		Day:       store.Weekday(p.Day),
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
	}
}

type scheduleEntryResponse struct {
	SubjectID int32  `json:"subjectId"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Position  int32  `json:"position"`
}

type scheduleResponse struct {
	ID        int32                    `json:"id"`
	UID       string                   `json:"uid"`
	SectionID int32                    `json:"sectionId"`
	Entries   []*scheduleEntryResponse `json:"entries"`
	CreatedTs int64                    `json:"createdTs"`
	UpdatedTs int64                    `json:"updatedTs"`
}

func convertSchedule(schedule *store.Schedule) *scheduleResponse {
	entries := make([]*scheduleEntryResponse, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		entries = append(entries, &scheduleEntryResponse{
			SubjectID: entry.SubjectID,
			Day:       string(entry.Day),
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Position:  entry.Position,
		})
	}
	return &scheduleResponse{
		ID:        schedule.ID,
		UID:       schedule.UID,
		SectionID: schedule.SectionID,
		Entries:   entries,
		CreatedTs: schedule.CreatedTs,
		UpdatedTs: schedule.UpdatedTs,
	}
}

func (s *APIV1Service) sectionFromPath(c echo.Context) (*store.Section, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, invalidArgument(c, err.Error())
	}
	section, err := s.Store.GetSection(c.Request().Context(), &store.FindSection{ID: &id})
	if err != nil {
		return nil, errorResponse(c, err)
	}
	if section == nil {
		return nil, notFound(c, "section not found")
	}
	return section, nil
}

// GetSchedule returns the section's schedule.
func (s *APIV1Service) GetSchedule(c echo.Context) error {
	section, err := s.sectionFromPath(c)
	if section == nil {
		return err
	}
	schedule, err := s.ScheduleService.ScheduleBySection(c.Request().Context(), section.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	if schedule == nil {
		return notFound(c, "schedule not found")
	}
	return c.JSON(http.StatusOK, convertSchedule(schedule))
}

type createScheduleRequest struct {
	Entries []*scheduleEntryPayload `json:"entries"`
}

// CreateSchedule creates the section's schedule; the whole entry batch is
// validated against the teaching-load cap before anything is written.
func (s *APIV1Service) CreateSchedule(c echo.Context) error {
	section, err := s.sectionFromPath(c)
	if section == nil {
		return err
	}
	var req createScheduleRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed schedule request")
	}
	entries := make([]*store.ScheduleEntry, 0, len(req.Entries))
	for _, payload := range req.Entries {
		entries = append(entries, payload.toStore())
	}
	schedule, err := s.ScheduleService.CreateSchedule(c.Request().Context(), section.ID, entries)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSchedule(schedule))
}

// ReplaceScheduleEntries swaps the schedule's whole entry list.
func (s *APIV1Service) ReplaceScheduleEntries(c echo.Context) error {
	section, err := s.sectionFromPath(c)
	if section == nil {
		return err
	}
	var req createScheduleRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed schedule request")
	}
	entries := make([]*store.ScheduleEntry, 0, len(req.Entries))
	for _, payload := range req.Entries {
		entries = append(entries, payload.toStore())
	}
	schedule, err := s.ScheduleService.ReplaceEntries(c.Request().Context(), section.ID, entries)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSchedule(schedule))
}

// DeleteSchedule removes the section's schedule.
func (s *APIV1Service) DeleteSchedule(c echo.Context) error {
	section, err := s.sectionFromPath(c)
	if section == nil {
		return err
	}
	if err := s.ScheduleService.DeleteSchedule(c.Request().Context(), section.ID); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddScheduleEntry appends one entry to the section's schedule.
func (s *APIV1Service) AddScheduleEntry(c echo.Context) error {
	section, err := s.sectionFromPath(c)
	if section == nil {
		return err
	}
	var payload scheduleEntryPayload
	if err := c.Bind(&payload); err != nil {
		return invalidArgument(c, "malformed entry request")
	}
	schedule, err := s.ScheduleService.AddEntry(c.Request().Context(), section.ID, payload.toStore())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSchedule(schedule))
}

// UpdateScheduleEntry replaces the entry at the given position.
func (s *APIV1Service) UpdateScheduleEntry(c echo.Context) error {
	section, err := s.sectionFromPath(c)
	if section == nil {
		return err
	}
	index, err := pathID(c, "index")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var payload scheduleEntryPayload
	if err := c.Bind(&payload); err != nil {
		return invalidArgument(c, "malformed entry request")
	}
	schedule, err := s.ScheduleService.UpdateEntry(c.Request().Context(), section.ID, index, payload.toStore())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSchedule(schedule))
}

// RemoveScheduleEntry deletes the entry at the given position.
func (s *APIV1Service) RemoveScheduleEntry(c echo.Context) error {
	section, err := s.sectionFromPath(c)
	if section == nil {
		return err
	}
	index, err := pathID(c, "index")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	schedule, err := s.ScheduleService.RemoveEntry(c.Request().Context(), section.ID, index)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, convertSchedule(schedule))
}
