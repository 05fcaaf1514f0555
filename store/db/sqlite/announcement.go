package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/store"
)

func (d *DB) CreateAnnouncement(ctx context.Context, create *store.Announcement) (*store.Announcement, error) {
	stmt := `
		INSERT INTO announcement (uid, creator_id, title, content)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts, row_status`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.CreatorID,
		create.Title,
		create.Content,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create announcement")
	}
	return create, nil
}

func (d *DB) ListAnnouncements(ctx context.Context, find *store.FindAnnouncement) ([]*store.Announcement, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "creator_id = ?"), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "row_status = ?"), append(args, *v)
	}

	query := `
		SELECT id, uid, creator_id, created_ts, updated_ts, row_status, title, content
		FROM announcement
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`
	if v := find.Limit; v != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *v)
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query announcements")
	}
	defer rows.Close()

	list := make([]*store.Announcement, 0)
	for rows.Next() {
		var announcement store.Announcement
		if err := rows.Scan(
			&announcement.ID,
			&announcement.UID,
			&announcement.CreatorID,
			&announcement.CreatedTs,
			&announcement.UpdatedTs,
			&announcement.RowStatus,
			&announcement.Title,
			&announcement.Content,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan announcement")
		}
		list = append(list, &announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate announcements")
	}
	return list, nil
}

func (d *DB) UpdateAnnouncement(ctx context.Context, update *store.UpdateAnnouncement) (*store.Announcement, error) {
	set, args := []string{}, []any{}

	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = ?"), append(args, *v)
	}
	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Content; v != nil {
		set, args = append(set, "content = ?"), append(args, *v)
	}
	updatedTs := time.Now().Unix()
	if v := update.UpdatedTs; v != nil {
		updatedTs = *v
	}
	set, args = append(set, "updated_ts = ?"), append(args, updatedTs)
	args = append(args, update.ID)

	stmt := `
		UPDATE announcement SET ` + strings.Join(set, ", ") + `
		WHERE id = ?
		RETURNING id, uid, creator_id, created_ts, updated_ts, row_status, title, content`
	var announcement store.Announcement
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&announcement.ID,
		&announcement.UID,
		&announcement.CreatorID,
		&announcement.CreatedTs,
		&announcement.UpdatedTs,
		&announcement.RowStatus,
		&announcement.Title,
		&announcement.Content,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update announcement")
	}
	return &announcement, nil
}

func (d *DB) DeleteAnnouncement(ctx context.Context, delete *store.DeleteAnnouncement) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM announcement WHERE id = ?", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete announcement")
	}
	return nil
}
