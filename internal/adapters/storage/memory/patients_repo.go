package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"healbot/internal/domain/patients"
)

type patientRepo struct {
	st *Store
}

func NewPatientRepo(st *Store) patients.Repository {
	return &patientRepo{st: st}
}

func (r *patientRepo) Create(ctx context.Context, p patients.Patient) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}
	if _, exists := r.st.patients[p.ID]; exists {
		return errors.New("patient already exists")
	}
	r.st.patients[p.ID] = p
	return nil
}

func (r *patientRepo) ListByUser(ctx context.Context, userID string) ([]patients.Patient, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]patients.Patient, 0)
	for _, p := range r.st.patients {
		if p.UserID == userID {
			out = append(out, p)
		}
	}

	// Orden estable por created_at asc (consistencia con el repo SQL).
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *patientRepo) DeleteCascade(ctx context.Context, userID, patientID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	p, ok := r.st.patients[patientID]
	if !ok || p.UserID != userID {
		return patients.ErrNotFound
	}

	// Hijas primero: tomas de cada medicina del familiar, luego las medicinas.
	for id, m := range r.st.medicines {
		if m.UserID != userID || m.PatientID != patientID {
			continue
		}
		r.st.deleteSchedulesOf(id)
		delete(r.st.medicines, id)
	}

	delete(r.st.patients, patientID)
	return nil
}
