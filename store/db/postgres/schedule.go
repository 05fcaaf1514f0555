package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/store"
)

func (d *DB) CreateSchedule(ctx context.Context, create *store.Schedule) (*store.Schedule, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt := `
		INSERT INTO schedule (uid, section_id)
		VALUES ($1, $2)
		RETURNING id, created_ts, updated_ts`
	if err := tx.QueryRowContext(ctx, stmt,
		create.UID,
		create.SectionID,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create schedule")
	}

	if err := insertScheduleEntries(ctx, tx, create.ID, create.Entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}
	return create, nil
}

func (d *DB) ListSchedules(ctx context.Context, find *store.FindSchedule) ([]*store.Schedule, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "schedule.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "schedule.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.SectionID; v != nil {
		where, args = append(where, "schedule.section_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(find.SubjectIDs) > 0 {
		ph := placeholders(len(args)+1, len(find.SubjectIDs))
		for _, id := range find.SubjectIDs {
			args = append(args, id)
		}
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM schedule_entry WHERE schedule_entry.schedule_id = schedule.id AND schedule_entry.subject_id IN (%s))",
			ph,
		))
	}

	query := `
		SELECT schedule.id, schedule.uid, schedule.created_ts, schedule.updated_ts, schedule.section_id
		FROM schedule
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY schedule.id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query schedules")
	}
	defer rows.Close()

	list := make([]*store.Schedule, 0)
	for rows.Next() {
		var schedule store.Schedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.UID,
			&schedule.CreatedTs,
			&schedule.UpdatedTs,
			&schedule.SectionID,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan schedule")
		}
		list = append(list, &schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate schedules")
	}

	if err := d.loadScheduleEntries(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) UpdateSchedule(ctx context.Context, update *store.UpdateSchedule) (*store.Schedule, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	updatedTs := time.Now().Unix()
	if v := update.UpdatedTs; v != nil {
		updatedTs = *v
	}

	stmt := `
		UPDATE schedule SET updated_ts = $1
		WHERE id = $2
		RETURNING id, uid, created_ts, updated_ts, section_id`
	var schedule store.Schedule
	if err := tx.QueryRowContext(ctx, stmt, updatedTs, update.ID).Scan(
		&schedule.ID,
		&schedule.UID,
		&schedule.CreatedTs,
		&schedule.UpdatedTs,
		&schedule.SectionID,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update schedule")
	}

	if update.Entries != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM schedule_entry WHERE schedule_id = $1", update.ID); err != nil {
			return nil, errors.Wrap(err, "failed to clear schedule entries")
		}
		if err := insertScheduleEntries(ctx, tx, update.ID, update.Entries); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	if err := d.loadScheduleEntries(ctx, []*store.Schedule{&schedule}); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (d *DB) DeleteSchedule(ctx context.Context, delete *store.DeleteSchedule) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM schedule WHERE id = $1", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete schedule")
	}
	return nil
}

func insertScheduleEntries(ctx context.Context, tx *sql.Tx, scheduleID int32, entries []*store.ScheduleEntry) error {
	for i, entry := range entries {
		entry.Position = int32(i)
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO schedule_entry (schedule_id, subject_id, day_of_week, start_time, end_time, position)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			scheduleID, entry.SubjectID, entry.Day, entry.StartTime, entry.EndTime, entry.Position,
		).Scan(&entry.ID); err != nil {
			return errors.Wrap(err, "failed to insert schedule entry")
		}
	}
	return nil
}

func (d *DB) loadScheduleEntries(ctx context.Context, schedules []*store.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	args := make([]any, 0, len(schedules))
	byID := make(map[int32]*store.Schedule, len(schedules))
	for _, schedule := range schedules {
		args = append(args, schedule.ID)
		byID[schedule.ID] = schedule
		schedule.Entries = []*store.ScheduleEntry{}
	}

	query := fmt.Sprintf(`
		SELECT id, schedule_id, subject_id, day_of_week, start_time, end_time, position
		FROM schedule_entry
		WHERE schedule_id IN (%s)
		ORDER BY schedule_id ASC, position ASC`,
		placeholders(1, len(schedules)),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to query schedule entries")
	}
	defer rows.Close()

	for rows.Next() {
		var entry store.ScheduleEntry
		var scheduleID int32
		if err := rows.Scan(
			&entry.ID,
			&scheduleID,
			&entry.SubjectID,
			&entry.Day,
			&entry.StartTime,
			&entry.EndTime,
			&entry.Position,
		); err != nil {
			return errors.Wrap(err, "failed to scan schedule entry")
		}
		if schedule, ok := byID[scheduleID]; ok {
			schedule.Entries = append(schedule.Entries, &entry)
		}
	}
	return errors.Wrap(rows.Err(), "failed to iterate schedule entries")
}
