package postgres

import (
	"context"
	"database/sql"
	"strings"

	"healbot/internal/domain/medicines"
	"healbot/internal/domain/schedules"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

// CreateWithSchedules inserta la medicina y el lote de tomas generadas dentro
// de una sola transacción: cualquier fallo revierte todo, nada parcial queda
// visible. Cada toma usa ON CONFLICT DO NOTHING sobre el UNIQUE
// (medicine_id, schedule_date, time_of_day), así la generación es segura de
// repetir incluso ante intentos concurrentes.
func (r *MedicinesRepo) CreateWithSchedules(ctx context.Context, m medicines.Medicine, rows []schedules.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO medicines (
			id, user_id, patient_id,
			name, dosage, unit, frequency,
			start_date, end_date,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		m.ID,
		m.UserID,
		m.PatientID,
		m.Name,
		m.Dosage,
		m.Unit,
		string(m.Frequency),
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
	); err != nil {
		return err
	}

	for _, sc := range rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedules (
				id, medicine_id,
				schedule_date, time_of_day,
				dosage, status, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (medicine_id, schedule_date, time_of_day) DO NOTHING
		`,
			sc.ID,
			sc.MedicineID,
			sc.Date,
			sc.TimeOfDay,
			sc.Dosage,
			string(sc.Status),
			sc.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MedicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id, patient_id,
			name, dosage, unit, frequency,
			start_date, end_date,
			created_at
		FROM medicines
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		var m medicines.Medicine
		var freq string
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.PatientID,
			&m.Name,
			&m.Dosage,
			&m.Unit,
			&freq,
			&m.StartDate,
			&m.EndDate,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.Frequency = medicines.Frequency(freq)
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *MedicinesRepo) DeleteOwned(ctx context.Context, userID, medicineID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM medicines WHERE id = $1 AND user_id = $2
	`, medicineID, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return medicines.ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM schedules WHERE medicine_id = $1
	`, medicineID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM medicines WHERE id = $1
	`, medicineID); err != nil {
		return err
	}

	return tx.Commit()
}
