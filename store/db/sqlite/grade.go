package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/store"
)

func (d *DB) CreateGrade(ctx context.Context, create *store.Grade) (*store.Grade, error) {
	stmt := `
		INSERT INTO grade (student_id, subject_id, exam, marks)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.StudentID,
		create.SubjectID,
		create.Exam,
		create.Marks,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create grade")
	}
	return create, nil
}

func (d *DB) ListGrades(ctx context.Context, find *store.FindGrade) ([]*store.Grade, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.StudentID; v != nil {
		where, args = append(where, "student_id = ?"), append(args, *v)
	}
	if v := find.SubjectID; v != nil {
		where, args = append(where, "subject_id = ?"), append(args, *v)
	}
	if v := find.Exam; v != nil {
		where, args = append(where, "exam = ?"), append(args, *v)
	}

	query := `
		SELECT id, created_ts, updated_ts, student_id, subject_id, exam, marks
		FROM grade
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query grades")
	}
	defer rows.Close()

	list := make([]*store.Grade, 0)
	for rows.Next() {
		var grade store.Grade
		if err := rows.Scan(
			&grade.ID,
			&grade.CreatedTs,
			&grade.UpdatedTs,
			&grade.StudentID,
			&grade.SubjectID,
			&grade.Exam,
			&grade.Marks,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan grade")
		}
		list = append(list, &grade)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate grades")
	}
	return list, nil
}

func (d *DB) UpdateGrade(ctx context.Context, update *store.UpdateGrade) (*store.Grade, error) {
	set, args := []string{}, []any{}

	if v := update.Exam; v != nil {
		set, args = append(set, "exam = ?"), append(args, *v)
	}
	if v := update.Marks; v != nil {
		set, args = append(set, "marks = ?"), append(args, *v)
	}
	updatedTs := time.Now().Unix()
	if v := update.UpdatedTs; v != nil {
		updatedTs = *v
	}
	set, args = append(set, "updated_ts = ?"), append(args, updatedTs)
	args = append(args, update.ID)

	stmt := `
		UPDATE grade SET ` + strings.Join(set, ", ") + `
		WHERE id = ?
		RETURNING id, created_ts, updated_ts, student_id, subject_id, exam, marks`
	var grade store.Grade
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&grade.ID,
		&grade.CreatedTs,
		&grade.UpdatedTs,
		&grade.StudentID,
		&grade.SubjectID,
		&grade.Exam,
		&grade.Marks,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update grade")
	}
	return &grade, nil
}

func (d *DB) DeleteGrade(ctx context.Context, delete *store.DeleteGrade) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM grade WHERE id = ?", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete grade")
	}
	return nil
}
