package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/store"
)

func (d *DB) CreateSection(ctx context.Context, create *store.Section) (*store.Section, error) {
	stmt := `
		INSERT INTO section (uid, name, grade_level)
		VALUES (?, ?, ?)
		RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.Name,
		create.GradeLevel,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create section")
	}
	return create, nil
}

func (d *DB) ListSections(ctx context.Context, find *store.FindSection) ([]*store.Section, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "name = ?"), append(args, *v)
	}
	if v := find.GradeLevel; v != nil {
		where, args = append(where, "grade_level = ?"), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, updated_ts, name, grade_level
		FROM section
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY name ASC, id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query sections")
	}
	defer rows.Close()

	list := make([]*store.Section, 0)
	for rows.Next() {
		var section store.Section
		if err := rows.Scan(
			&section.ID,
			&section.UID,
			&section.CreatedTs,
			&section.UpdatedTs,
			&section.Name,
			&section.GradeLevel,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan section")
		}
		list = append(list, &section)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate sections")
	}
	return list, nil
}

func (d *DB) UpdateSection(ctx context.Context, update *store.UpdateSection) (*store.Section, error) {
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
		UPDATE section SET ` + strings.Join(set, ", ") + `
		WHERE id = ?
		RETURNING id, uid, created_ts, updated_ts, name, grade_level`
	var section store.Section
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&section.ID,
		&section.UID,
		&section.CreatedTs,
		&section.UpdatedTs,
		&section.Name,
		&section.GradeLevel,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update section")
	}
	return &section, nil
}

func (d *DB) DeleteSection(ctx context.Context, delete *store.DeleteSection) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM section WHERE id = ?", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete section")
	}
	return nil
}
