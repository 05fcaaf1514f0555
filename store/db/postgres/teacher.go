package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/store"
)

func (d *DB) CreateTeacher(ctx context.Context, create *store.Teacher) (*store.Teacher, error) {
	stmt := `
		INSERT INTO teacher (uid, name, email, weekly_load)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.Name,
		create.Email,
		create.WeeklyLoad,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create teacher")
	}
	return create, nil
}

func (d *DB) ListTeachers(ctx context.Context, find *store.FindTeacher) ([]*store.Teacher, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(find.IDs) > 0 {
		ph := placeholders(len(args)+1, len(find.IDs))
		for _, id := range find.IDs {
			args = append(args, id)
		}
		where = append(where, fmt.Sprintf("id IN (%s)", ph))
	}

	query := `
		SELECT id, uid, created_ts, updated_ts, name, email, weekly_load
		FROM teacher
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY name ASC, id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query teachers")
	}
	defer rows.Close()

	list := make([]*store.Teacher, 0)
	for rows.Next() {
		var teacher store.Teacher
		if err := rows.Scan(
			&teacher.ID,
			&teacher.UID,
			&teacher.CreatedTs,
			&teacher.UpdatedTs,
			&teacher.Name,
			&teacher.Email,
			&teacher.WeeklyLoad,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan teacher")
		}
		list = append(list, &teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate teachers")
	}
	return list, nil
}

func (d *DB) UpdateTeacher(ctx context.Context, update *store.UpdateTeacher) (*store.Teacher, error) {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Email; v != nil {
		set, args = append(set, "email = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.WeeklyLoad; v != nil {
		set, args = append(set, "weekly_load = "+placeholder(len(args)+1)), append(args, *v)
	}
	updatedTs := time.Now().Unix()
	if v := update.UpdatedTs; v != nil {
		updatedTs = *v
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, updatedTs)
	args = append(args, update.ID)

	stmt := `
		UPDATE teacher SET ` + strings.Join(set, ", ") + `
		WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, uid, created_ts, updated_ts, name, email, weekly_load`
	var teacher store.Teacher
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&teacher.ID,
		&teacher.UID,
		&teacher.CreatedTs,
		&teacher.UpdatedTs,
		&teacher.Name,
		&teacher.Email,
		&teacher.WeeklyLoad,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update teacher")
	}
	return &teacher, nil
}

func (d *DB) DeleteTeacher(ctx context.Context, delete *store.DeleteTeacher) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM teacher WHERE id = $1", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete teacher")
	}
	return nil
}
