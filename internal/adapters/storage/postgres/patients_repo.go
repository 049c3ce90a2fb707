package postgres

import (
	"context"
	"database/sql"
	"strings"

	"healbot/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (
			id, user_id,
			name, relationship, age, blood_type,
			phone, emergency, history,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Relationship,
		p.Age,
		p.BloodType,
		p.Phone,
		p.Emergency,
		p.History,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) ListByUser(ctx context.Context, userID string) ([]patients.Patient, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			name, relationship, age, blood_type,
			phone, emergency, history,
			created_at, updated_at
		FROM patients
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		var p patients.Patient
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Relationship,
			&p.Age,
			&p.BloodType,
			&p.Phone,
			&p.Emergency,
			&p.History,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// DeleteCascade borra en una transacción: tomas → medicinas → familiar.
// El orden hijas-primero garantiza que nada sobreviva a su padre aunque el
// esquema no tuviera ON DELETE CASCADE.
func (r *PatientsRepo) DeleteCascade(ctx context.Context, userID, patientID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM patients WHERE id = $1 AND user_id = $2
	`, patientID, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return patients.ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM schedules
		WHERE medicine_id IN (
			SELECT id FROM medicines WHERE user_id = $1 AND patient_id = $2
		)
	`, userID, patientID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM medicines WHERE user_id = $1 AND patient_id = $2
	`, userID, patientID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM patients WHERE id = $1 AND user_id = $2
	`, patientID, userID); err != nil {
		return err
	}

	return tx.Commit()
}
