package memory

import (
	"context"
	"sort"
	"time"

	"healbot/internal/domain/schedules"
)

type scheduleRepo struct {
	st *Store
}

func NewScheduleRepo(st *Store) schedules.Repository {
	return &scheduleRepo{st: st}
}

func (r *scheduleRepo) List(ctx context.Context, userID string, filter schedules.ListFilter) ([]schedules.Row, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]schedules.Row, 0)
	for _, sc := range r.st.schedules {
		m, ok := r.st.medicines[sc.MedicineID]
		if !ok || m.UserID != userID {
			continue
		}

		if filter.Date != nil && !sc.Date.Equal(*filter.Date) {
			continue
		}
		if filter.From != nil && !sc.Date.After(*filter.From) {
			continue
		}

		out = append(out, schedules.Row{
			Schedule:     sc,
			MedicineName: m.Name,
			PatientID:    m.PatientID,
			ScheduledFor: sc.ScheduledAt(),
		})
	}

	// Asc por instante compuesto; empate por id para orden estable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledFor.Equal(out[j].ScheduledFor) {
			return out[i].ScheduledFor.Before(out[j].ScheduledFor)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *scheduleRepo) MarkTaken(ctx context.Context, userID, scheduleID string, at time.Time) (schedules.Schedule, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	sc, ok := r.st.schedules[scheduleID]
	if !ok {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	m, ok := r.st.medicines[sc.MedicineID]
	if !ok || m.UserID != userID {
		return schedules.Schedule{}, schedules.ErrNotFound
	}

	// Re-marcar una toma ya tomada vuelve a sellar taken_at.
	sc.Status = schedules.StatusTaken
	sc.TakenAt = &at
	r.st.schedules[scheduleID] = sc

	return sc, nil
}

func (r *scheduleRepo) DeleteOwned(ctx context.Context, userID, scheduleID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	sc, ok := r.st.schedules[scheduleID]
	if !ok {
		return schedules.ErrNotFound
	}
	m, ok := r.st.medicines[sc.MedicineID]
	if !ok || m.UserID != userID {
		return schedules.ErrNotFound
	}

	delete(r.st.schedules, scheduleID)
	delete(r.st.schedKeys, scheduleKey(sc.MedicineID, sc.Date, sc.TimeOfDay))
	return nil
}
