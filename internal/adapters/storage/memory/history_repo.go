package memory

import (
	"context"
	"sort"

	"healbot/internal/domain/history"
)

type historyRepo struct {
	st *Store
}

func NewHistoryRepo(st *Store) history.Repository {
	return &historyRepo{st: st}
}

func (r *historyRepo) Query(ctx context.Context, userID, patientID string) ([]history.Entry, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]history.Entry, 0)
	for _, sc := range r.st.schedules {
		m, ok := r.st.medicines[sc.MedicineID]
		if !ok || m.UserID != userID {
			continue
		}
		if patientID != "" && m.PatientID != patientID {
			continue
		}

		e := history.Entry{
			ScheduleID:   sc.ID,
			MedicineID:   m.ID,
			PatientID:    m.PatientID,
			MedicineName: m.Name,
			Frequency:    string(m.Frequency),
			Dosage:       sc.Dosage,
			Status:       sc.Status,
			TimeOfDay:    sc.TimeOfDay,
			ScheduledAt:  sc.ScheduledAt(),
			TakenAt:      sc.TakenAt,
			CreatedAt:    sc.CreatedAt,
		}

		// LEFT JOIN: una medicina sin familiar deja el nombre vacío.
		if p, ok := r.st.patients[m.PatientID]; ok {
			e.PatientName = p.Name
		}

		e.EffectiveAt = e.ScheduledAt
		if sc.TakenAt != nil {
			e.EffectiveAt = *sc.TakenAt
		}

		out = append(out, e)
	}

	// Desc por instante efectivo; empates los gana la toma creada más
	// recientemente.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EffectiveAt.Equal(out[j].EffectiveAt) {
			return out[i].EffectiveAt.After(out[j].EffectiveAt)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ScheduleID > out[j].ScheduleID
	})

	return out, nil
}
