package postgres

import (
	"context"
	"database/sql"
	"strings"

	"healbot/internal/domain/history"
	"healbot/internal/domain/schedules"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Query(ctx context.Context, userID, patientID string) ([]history.Entry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			s.id, s.medicine_id, m.patient_id,
			COALESCE(fm.name, ''), m.name,
			m.frequency, s.dosage, s.status,
			s.time_of_day,
			(s.schedule_date + s.time_of_day::time) AS scheduled_at,
			s.taken_at,
			COALESCE(s.taken_at, (s.schedule_date + s.time_of_day::time)) AS effective_at,
			s.created_at
		FROM schedules s
		JOIN medicines m ON m.id = s.medicine_id
		LEFT JOIN patients fm ON fm.id = m.patient_id
		WHERE m.user_id = $1
	`)

	args := []any{userID}
	if strings.TrimSpace(patientID) != "" {
		sb.WriteString(" AND m.patient_id = $2")
		args = append(args, strings.TrimSpace(patientID))
	}

	// El instante efectivo (tomada ⇒ taken_at, si no el agendado) decide el
	// orden; empates los gana la toma creada más recientemente.
	sb.WriteString(" ORDER BY effective_at DESC, s.created_at DESC, s.id DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		var status string
		var takenAt sql.NullTime

		if err := rows.Scan(
			&e.ScheduleID,
			&e.MedicineID,
			&e.PatientID,
			&e.PatientName,
			&e.MedicineName,
			&e.Frequency,
			&e.Dosage,
			&status,
			&e.TimeOfDay,
			&e.ScheduledAt,
			&takenAt,
			&e.EffectiveAt,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		e.Status = schedules.Status(status)
		if takenAt.Valid {
			t := takenAt.Time
			e.TakenAt = &t
		}

		out = append(out, e)
	}

	return out, rows.Err()
}
