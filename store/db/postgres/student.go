package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/store"
)

func (d *DB) CreateStudent(ctx context.Context, create *store.Student) (*store.Student, error) {
	stmt := `
		INSERT INTO student (uid, name, email, section_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.Name,
		create.Email,
		create.SectionID,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create student")
	}
	return create, nil
}

func (d *DB) ListStudents(ctx context.Context, find *store.FindStudent) ([]*store.Student, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.SectionID; v != nil {
		where, args = append(where, "section_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, updated_ts, name, email, section_id
		FROM student
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY name ASC, id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query students")
	}
	defer rows.Close()

	list := make([]*store.Student, 0)
	for rows.Next() {
		var student store.Student
		if err := rows.Scan(
			&student.ID,
			&student.UID,
			&student.CreatedTs,
			&student.UpdatedTs,
			&student.Name,
			&student.Email,
			&student.SectionID,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan student")
		}
		list = append(list, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate students")
	}
	return list, nil
}

func (d *DB) UpdateStudent(ctx context.Context, update *store.UpdateStudent) (*store.Student, error) {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Email; v != nil {
		set, args = append(set, "email = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.SectionID; v != nil {
		set, args = append(set, "section_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	updatedTs := time.Now().Unix()
	if v := update.UpdatedTs; v != nil {
		updatedTs = *v
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, updatedTs)
	args = append(args, update.ID)

	stmt := `
		UPDATE student SET ` + strings.Join(set, ", ") + `
		WHERE id = ` + placeholder(len(args)) + `
		RETURNING id, uid, created_ts, updated_ts, name, email, section_id`
	var student store.Student
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&student.ID,
		&student.UID,
		&student.CreatedTs,
		&student.UpdatedTs,
		&student.Name,
		&student.Email,
		&student.SectionID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update student")
	}
	return &student, nil
}

func (d *DB) DeleteStudent(ctx context.Context, delete *store.DeleteStudent) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM student WHERE id = $1", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete student")
	}
	return nil
}
