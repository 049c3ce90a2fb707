package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"healbot/internal/domain/schedules"
)

type SchedulesRepo struct {
	db *sql.DB
}

func NewSchedulesRepo(db *sql.DB) *SchedulesRepo {
	return &SchedulesRepo{db: db}
}

func (r *SchedulesRepo) List(ctx context.Context, userID string, filter schedules.ListFilter) ([]schedules.Row, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			s.id, s.medicine_id,
			s.schedule_date, s.time_of_day,
			s.dosage, s.status, s.taken_at, s.created_at,
			m.name, m.patient_id
		FROM schedules s
		JOIN medicines m ON m.id = s.medicine_id
		WHERE m.user_id = $1
	`)

	args := []any{userID}
	argN := 2

	if filter.Date != nil {
		sb.WriteString(fmt.Sprintf(" AND s.schedule_date = $%d", argN))
		args = append(args, *filter.Date)
		argN++
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND s.schedule_date > $%d", argN))
		args = append(args, *filter.From)
		argN++
	}

	// Orden por instante compuesto: la fecha sola empataría todas las horas
	// del día.
	sb.WriteString(" ORDER BY (s.schedule_date + s.time_of_day::time) ASC, s.id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedules.Row, 0)
	for rows.Next() {
		row, err := scanScheduleRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// MarkTaken es un update condicional en una sola sentencia: el join con
// medicines autoriza y el conteo de filas afectadas distingue NotFound.
// Ante un delete concurrente, exactamente una de las dos operaciones gana.
func (r *SchedulesRepo) MarkTaken(ctx context.Context, userID, scheduleID string, at time.Time) (schedules.Schedule, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE schedules s
		SET status = 'taken', taken_at = $1
		FROM medicines m
		WHERE s.id = $2
		  AND s.medicine_id = m.id
		  AND m.user_id = $3
		RETURNING
			s.id, s.medicine_id,
			s.schedule_date, s.time_of_day,
			s.dosage, s.status, s.taken_at, s.created_at
	`, at, scheduleID, userID)

	var sc schedules.Schedule
	var status string
	var takenAt sql.NullTime
	if err := row.Scan(
		&sc.ID,
		&sc.MedicineID,
		&sc.Date,
		&sc.TimeOfDay,
		&sc.Dosage,
		&status,
		&takenAt,
		&sc.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return schedules.Schedule{}, schedules.ErrNotFound
		}
		return schedules.Schedule{}, err
	}

	sc.Status = schedules.Status(status)
	if takenAt.Valid {
		t := takenAt.Time
		sc.TakenAt = &t
	}

	return sc, nil
}

func (r *SchedulesRepo) DeleteOwned(ctx context.Context, userID, scheduleID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM schedules s
		USING medicines m
		WHERE s.id = $1
		  AND s.medicine_id = m.id
		  AND m.user_id = $2
	`, scheduleID, userID)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return schedules.ErrNotFound
	}
	return nil
}

func scanScheduleRow(rows *sql.Rows) (schedules.Row, error) {
	var out schedules.Row
	var status string
	var takenAt sql.NullTime

	if err := rows.Scan(
		&out.ID,
		&out.MedicineID,
		&out.Date,
		&out.TimeOfDay,
		&out.Dosage,
		&status,
		&takenAt,
		&out.CreatedAt,
		&out.MedicineName,
		&out.PatientID,
	); err != nil {
		return schedules.Row{}, err
	}

	out.Status = schedules.Status(status)
	if takenAt.Valid {
		t := takenAt.Time
		out.TakenAt = &t
	}
	out.ScheduledFor = out.ScheduledAt()

	return out, nil
}
