package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"healbot/internal/domain/medicines"
	"healbot/internal/domain/schedules"
)

type medicineRepo struct {
	st *Store
}

func NewMedicineRepo(st *Store) medicines.Repository {
	return &medicineRepo{st: st}
}

func (r *medicineRepo) CreateWithSchedules(ctx context.Context, m medicines.Medicine, rows []schedules.Schedule) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	if _, exists := r.st.medicines[m.ID]; exists {
		return errors.New("medicine already exists")
	}

	r.st.medicines[m.ID] = m

	for _, sc := range rows {
		key := scheduleKey(sc.MedicineID, sc.Date, sc.TimeOfDay)
		if _, dup := r.st.schedKeys[key]; dup {
			// Misma (medicina, fecha, hora): se ignora, como el
			// ON CONFLICT DO NOTHING del repo SQL.
			continue
		}
		r.st.schedKeys[key] = sc.ID
		r.st.schedules[sc.ID] = sc
	}

	return nil
}

func (r *medicineRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]medicines.Medicine, 0)
	for _, m := range r.st.medicines {
		if m.UserID == userID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *medicineRepo) DeleteOwned(ctx context.Context, userID, medicineID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	m, ok := r.st.medicines[medicineID]
	if !ok || m.UserID != userID {
		return medicines.ErrNotFound
	}

	r.st.deleteSchedulesOf(medicineID)
	delete(r.st.medicines, medicineID)
	return nil
}
