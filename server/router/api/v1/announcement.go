package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/classtrack/classtrack/server/auth"
	"github.com/classtrack/classtrack/store"
)

const feedItemLimit = 20

// markdown renders announcement content for API responses and the feed.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

type announcementResponse struct {
	ID        int32  `json:"id"`
	UID       string `json:"uid"`
	CreatorID int32  `json:"creatorId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	// ContentHTML is the markdown content rendered to HTML.
	ContentHTML string `json:"contentHtml"`
	RowStatus   string `json:"rowStatus"`
	CreatedTs   int64  `json:"createdTs"`
	UpdatedTs   int64  `json:"updatedTs"`
}

func convertAnnouncement(announcement *store.Announcement) (*announcementResponse, error) {
	html, err := renderMarkdown(announcement.Content)
	if err != nil {
		return nil, err
	}
	return &announcementResponse{
		ID:          announcement.ID,
		UID:         announcement.UID,
		CreatorID:   announcement.CreatorID,
		Title:       announcement.Title,
		Content:     announcement.Content,
		ContentHTML: html,
		RowStatus:   announcement.RowStatus.String(),
		CreatedTs:   announcement.CreatedTs,
		UpdatedTs:   announcement.UpdatedTs,
	}, nil
}

type createAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateAnnouncement publishes a new announcement.
func (s *APIV1Service) CreateAnnouncement(c echo.Context) error {
	ctx := c.Request().Context()
	var req createAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed create request")
	}
	if req.Title == "" {
		return invalidArgument(c, "title is required")
	}
	user := auth.UserFromContext(ctx)
	announcement, err := s.Store.CreateAnnouncement(ctx, &store.Announcement{
		UID:       shortuuid.New(),
		CreatorID: user.ID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	resp, err := convertAnnouncement(announcement)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListAnnouncements returns active announcements, newest first.
func (s *APIV1Service) ListAnnouncements(c echo.Context) error {
	ctx := c.Request().Context()
	normal := store.Normal
	announcements, err := s.Store.ListAnnouncements(ctx, &store.FindAnnouncement{RowStatus: &normal})
	if err != nil {
		return errorResponse(c, err)
	}
	list := make([]*announcementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		resp, err := convertAnnouncement(announcement)
		if err != nil {
			return errorResponse(c, err)
		}
		list = append(list, resp)
	}
	return c.JSON(http.StatusOK, list)
}

// GetAnnouncement returns one announcement by ID.
func (s *APIV1Service) GetAnnouncement(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	announcement, err := s.Store.GetAnnouncement(ctx, &store.FindAnnouncement{ID: &id})
	if err != nil {
		return errorResponse(c, err)
	}
	if announcement == nil {
		return notFound(c, "announcement not found")
	}
	resp, err := convertAnnouncement(announcement)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

type updateAnnouncementRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	RowStatus *string `json:"rowStatus"`
}

// UpdateAnnouncement edits or archives an announcement.
func (s *APIV1Service) UpdateAnnouncement(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	var req updateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return invalidArgument(c, "malformed update request")
	}
	update := &store.UpdateAnnouncement{ID: id, Title: req.Title, Content: req.Content}
	if req.RowStatus != nil {
		rowStatus := store.RowStatus(*req.RowStatus)
		if rowStatus != store.Normal && rowStatus != store.Archived {
			return invalidArgument(c, "rowStatus must be NORMAL or ARCHIVED")
		}
		update.RowStatus = &rowStatus
	}
	announcement, err := s.Store.UpdateAnnouncement(ctx, update)
	if err != nil {
		return errorResponse(c, err)
	}
	resp, err := convertAnnouncement(announcement)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteAnnouncement removes an announcement.
func (s *APIV1Service) DeleteAnnouncement(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return invalidArgument(c, err.Error())
	}
	if err := s.Store.DeleteAnnouncement(ctx, &store.DeleteAnnouncement{ID: id}); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AnnouncementFeed serves the newest announcements as an RSS feed. The
// feed is public so it can be consumed by readers without an account.
func (s *APIV1Service) AnnouncementFeed(c echo.Context) error {
	ctx := c.Request().Context()
	normal := store.Normal
	limit := feedItemLimit
	announcements, err := s.Store.ListAnnouncements(ctx, &store.FindAnnouncement{
		RowStatus: &normal,
		Limit:     &limit,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	baseURL := s.Profile.InstanceURL
	feed := &feeds.Feed{
		Title:       "School Announcements",
		Link:        &feeds.Link{Href: baseURL + "/api/v1/announcements/feed.rss"},
		Description: "Latest school announcements",
		Created:     time.Now(),
	}
	for _, announcement := range announcements {
		html, err := renderMarkdown(announcement.Content)
		if err != nil {
			return errorResponse(c, err)
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          announcement.UID,
			Title:       announcement.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/api/v1/announcements/%d", baseURL, announcement.ID)},
			Description: html,
			Created:     time.Unix(announcement.CreatedTs, 0),
			Updated:     time.Unix(announcement.UpdatedTs, 0),
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
