package medicines

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"healbot/internal/domain/schedules"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	created  []Medicine
	rowsByID map[string][]schedules.Schedule
	failWith error
}

func newTestRepo() *testRepo {
	return &testRepo{rowsByID: map[string][]schedules.Schedule{}}
}

func (r *testRepo) CreateWithSchedules(ctx context.Context, m Medicine, rows []schedules.Schedule) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.created = append(r.created, m)
	r.rowsByID[m.ID] = rows
	return nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Medicine, error) {
	out := make([]Medicine, 0)
	for _, m := range r.created {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteOwned(ctx context.Context, userID, medicineID string) error {
	for i, m := range r.created {
		if m.ID == medicineID && m.UserID == userID {
			r.created = append(r.created[:i], r.created[i+1:]...)
			delete(r.rowsByID, medicineID)
			return nil
		}
	}
	return ErrNotFound
}

func fixedNow(t *testing.T, s string) func() time.Time {
	t.Helper()
	now, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return func() time.Time { return now }
}

// -------------------------
// Tests
// -------------------------

func TestCreate_GeneratesSchedulesAtomically(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = fixedNow(t, "2025-01-10T09:30:00Z")

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:      "Paracetamol",
		Dosage:    "500",
		Unit:      "mg",
		PatientID: "pat-1",
		Frequency: FreqTwiceDaily,
		Times:     []string{"08:00", "20:00"},
		StartDate: "2025-01-01",
		EndDate:   "2025-01-03",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Frequency != FreqTwiceDaily || m.Name != "Paracetamol" {
		t.Fatalf("unexpected medicine: %+v", m)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 medicine persisted, got %d", len(repo.created))
	}
	if got := len(repo.rowsByID[m.ID]); got != 6 {
		t.Fatalf("expected 6 schedules generated, got %d", got)
	}
	for _, sc := range repo.rowsByID[m.ID] {
		if sc.Dosage != "500 mg" || sc.Status != schedules.StatusPending {
			t.Fatalf("unexpected schedule row: %+v", sc)
		}
	}
}

func TestCreate_Defaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = fixedNow(t, "2025-01-10T09:30:00Z")

	// Sin frecuencia, horas ni fechas: ONCE_DAILY, ["08:00"], hoy..hoy.
	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:   "Ibuprofeno",
		Dosage: "400",
		Unit:   "mg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Frequency != FreqOnceDaily {
		t.Fatalf("expected default ONCE_DAILY, got %s", m.Frequency)
	}
	if got := m.StartDate.Format(schedules.DateLayout); got != "2025-01-10" {
		t.Fatalf("expected start date hoy, got %s", got)
	}
	if !m.EndDate.Equal(m.StartDate) {
		t.Fatalf("expected end date == start date, got %s", m.EndDate)
	}

	rows := repo.rowsByID[m.ID]
	if len(rows) != 1 || rows[0].TimeOfDay != "08:00" {
		t.Fatalf("expected single 08:00 row, got %+v", rows)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		in      CreateInput
		wantMsg string
	}{
		{
			name:    "sin nombre",
			in:      CreateInput{Dosage: "500"},
			wantMsg: "medicine name required",
		},
		{
			name:    "sin dosis",
			in:      CreateInput{Name: "Paracetamol"},
			wantMsg: "dosage required",
		},
		{
			name: "custom fuera de rango",
			in: CreateInput{
				Name: "X", Dosage: "1", Frequency: FreqCustom,
				CustomTimesCount: 9, CustomStepDays: 7,
			},
			wantMsg: "times per day must be 1-6",
		},
		{
			name: "frecuencia desconocida",
			in:   CreateInput{Name: "X", Dosage: "1", Frequency: "SOMETIMES"},
			wantMsg: "unknown frequency",
		},
		{
			name: "cantidad de horas no coincide",
			in: CreateInput{
				Name: "X", Dosage: "1", Frequency: FreqTwiceDaily,
				Times: []string{"08:00"},
			},
			wantMsg: "requires 2 time(s)",
		},
		{
			name: "horas duplicadas colapsan y no alcanzan",
			in: CreateInput{
				Name: "X", Dosage: "1", Frequency: FreqTwiceDaily,
				Times: []string{"08:00", "08:00"},
			},
			wantMsg: "requires 2 time(s)",
		},
		{
			name: "fecha de inicio inválida",
			in: CreateInput{
				Name: "X", Dosage: "1", StartDate: "not-a-date",
				Times: []string{"08:00"},
			},
			wantMsg: "invalid start date",
		},
		{
			name: "fin antes de inicio",
			in: CreateInput{
				Name: "X", Dosage: "1",
				Times:     []string{"08:00"},
				StartDate: "2025-03-10", EndDate: "2025-03-05",
			},
			wantMsg: "end date must be on or after start date",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newTestRepo()
			svc := NewService(repo)

			_, err := svc.Create(context.Background(), "user-1", c.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), c.wantMsg) {
				t.Fatalf("error %q does not contain %q", err.Error(), c.wantMsg)
			}

			// Nada persistido: ni medicina ni tomas.
			if len(repo.created) != 0 || len(repo.rowsByID) != 0 {
				t.Fatalf("expected nothing persisted, got %d medicines", len(repo.created))
			}
		})
	}
}

func TestCreate_StorageFailureLeavesNothing(t *testing.T) {
	repo := newTestRepo()
	repo.failWith = errors.New("storage down")
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "X", Dosage: "1", Times: []string{"08:00"},
	})
	if err == nil || errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no medicine persisted on failure")
	}
}

func TestDelete_NotOwned(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = fixedNow(t, "2025-01-10T09:30:00Z")

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "X", Dosage: "1", Times: []string{"08:00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-2", m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", m.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
