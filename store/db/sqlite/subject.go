package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/store"
)

func (d *DB) CreateSubject(ctx context.Context, create *store.Subject) (*store.Subject, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt := `
		INSERT INTO subject (uid, name, grade_level)
		VALUES (?, ?, ?)
		RETURNING id, created_ts, updated_ts`
	if err := tx.QueryRowContext(ctx, stmt,
		create.UID,
		create.Name,
		create.GradeLevel,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create subject")
	}

	if err := replaceSubjectTeachers(ctx, tx, create.ID, create.TeacherIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}
	return create, nil
}

func (d *DB) ListSubjects(ctx context.Context, find *store.FindSubject) ([]*store.Subject, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "subject.id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "subject.uid = ?"), append(args, *v)
	}
	if v := find.GradeLevel; v != nil {
		where, args = append(where, "subject.grade_level = ?"), append(args, *v)
	}
	if len(find.IDs) > 0 {
		placeholders := make([]string, 0, len(find.IDs))
		for _, id := range find.IDs {
			placeholders = append(placeholders, "?")
			args = append(args, id)
		}
		where = append(where, fmt.Sprintf("subject.id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if v := find.TeacherID; v != nil {
		where = append(where, "EXISTS (SELECT 1 FROM subject_teacher WHERE subject_teacher.subject_id = subject.id AND subject_teacher.teacher_id = ?)")
		args = append(args, *v)
	}

	query := `
		SELECT subject.id, subject.uid, subject.created_ts, subject.updated_ts, subject.name, subject.grade_level
		FROM subject
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY subject.name ASC, subject.id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query subjects")
	}
	defer rows.Close()

	list := make([]*store.Subject, 0)
	for rows.Next() {
		var subject store.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.UID,
			&subject.CreatedTs,
			&subject.UpdatedTs,
			&subject.Name,
			&subject.GradeLevel,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan subject")
		}
		list = append(list, &subject)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate subjects")
	}

	if err := d.loadSubjectTeachers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) UpdateSubject(ctx context.Context, update *store.UpdateSubject) (*store.Subject, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	set, args := []string{}, []any{}
	if v := update.Name; v != nil {
		set, args = append(set, "name = ?"), append(args, *v)
	}
	if v := update.GradeLevel; v != nil {
		set, args = append(set, "grade_level = ?"), append(args, *v)
	}
	updatedTs := time.Now().Unix()
	if v := update.UpdatedTs; v != nil {
		updatedTs = *v
	}
	set, args = append(set, "updated_ts = ?"), append(args, updatedTs)
	args = append(args, update.ID)

	stmt := `
		UPDATE subject SET ` + strings.Join(set, ", ") + `
		WHERE id = ?
		RETURNING id, uid, created_ts, updated_ts, name, grade_level`
	var subject store.Subject
	if err := tx.QueryRowContext(ctx, stmt, args...).Scan(
		&subject.ID,
		&subject.UID,
		&subject.CreatedTs,
		&subject.UpdatedTs,
		&subject.Name,
		&subject.GradeLevel,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update subject")
	}

	if update.TeacherIDs != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM subject_teacher WHERE subject_id = ?", update.ID); err != nil {
			return nil, errors.Wrap(err, "failed to clear subject teachers")
		}
		if err := replaceSubjectTeachers(ctx, tx, update.ID, update.TeacherIDs); err != nil {
			return nil, err
		}
		subject.TeacherIDs = update.TeacherIDs
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	if update.TeacherIDs == nil {
		if err := d.loadSubjectTeachers(ctx, []*store.Subject{&subject}); err != nil {
			return nil, err
		}
	}
	return &subject, nil
}

func (d *DB) DeleteSubject(ctx context.Context, delete *store.DeleteSubject) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM subject WHERE id = ?", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete subject")
	}
	return nil
}

// replaceSubjectTeachers inserts the assignment rows for a subject.
func replaceSubjectTeachers(ctx context.Context, tx *sql.Tx, subjectID int32, teacherIDs []int32) error {
	for _, teacherID := range teacherIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO subject_teacher (subject_id, teacher_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			subjectID, teacherID,
		); err != nil {
			return errors.Wrap(err, "failed to assign teacher to subject")
		}
	}
	return nil
}

// loadSubjectTeachers populates TeacherIDs for the given subjects.
func (d *DB) loadSubjectTeachers(ctx context.Context, subjects []*store.Subject) error {
	if len(subjects) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(subjects))
	args := make([]any, 0, len(subjects))
	byID := make(map[int32]*store.Subject, len(subjects))
	for _, subject := range subjects {
		placeholders = append(placeholders, "?")
		args = append(args, subject.ID)
		byID[subject.ID] = subject
		subject.TeacherIDs = []int32{}
	}

	query := fmt.Sprintf(
		"SELECT subject_id, teacher_id FROM subject_teacher WHERE subject_id IN (%s) ORDER BY teacher_id ASC",
		strings.Join(placeholders, ", "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to query subject teachers")
	}
	defer rows.Close()

	for rows.Next() {
		var subjectID, teacherID int32
		if err := rows.Scan(&subjectID, &teacherID); err != nil {
			return errors.Wrap(err, "failed to scan subject teacher")
		}
		if subject, ok := byID[subjectID]; ok {
			subject.TeacherIDs = append(subject.TeacherIDs, teacherID)
		}
	}
	return errors.Wrap(rows.Err(), "failed to iterate subject teachers")
}
