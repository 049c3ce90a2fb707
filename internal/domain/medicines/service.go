package medicines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healbot/internal/domain/schedules"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Dosage    string
	Unit      string
	PatientID string

	Frequency Frequency // default ONCE_DAILY
	Times     []string  // default ["08:00"]

	StartDate string // YYYY-MM-DD, default hoy
	EndDate   string // YYYY-MM-DD, default StartDate

	// Solo para Frequency == CUSTOM.
	CustomTimesCount int
	CustomStepDays   int
}

// Create valida la entrada, resuelve la frecuencia, normaliza las horas,
// expande el rango en tomas concretas y persiste todo atómicamente.
// Si cualquier paso falla no queda ni la medicina ni ninguna toma.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return Medicine{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medicine{}, fmt.Errorf("%w: medicine name required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Dosage) == "" {
		return Medicine{}, fmt.Errorf("%w: dosage required", ErrInvalidInput)
	}

	freq := in.Frequency
	if freq == "" {
		freq = FreqOnceDaily
	}

	meta, err := ResolveFrequency(freq, in.CustomTimesCount, in.CustomStepDays)
	if err != nil {
		return Medicine{}, err
	}

	rawTimes := in.Times
	if len(rawTimes) == 0 {
		rawTimes = []string{"08:00"}
	}
	times := NormalizeTimes(rawTimes)
	if len(times) != meta.RequiredTimes {
		// También cubre horas que colapsaron por duplicado: el usuario mandó N
		// pero quedaron menos tokens distintos.
		return Medicine{}, fmt.Errorf("%w: frequency %s requires %d time(s)", ErrInvalidInput, freq, meta.RequiredTimes)
	}

	now := s.now()

	start := now.UTC().Truncate(24 * time.Hour)
	if strings.TrimSpace(in.StartDate) != "" {
		start, err = schedules.ParseDate(in.StartDate)
		if err != nil {
			return Medicine{}, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
		}
	}

	end := start
	if strings.TrimSpace(in.EndDate) != "" {
		end, err = schedules.ParseDate(in.EndDate)
		if err != nil {
			return Medicine{}, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
		}
	}
	if end.Before(start) {
		return Medicine{}, fmt.Errorf("%w: end date must be on or after start date", ErrInvalidInput)
	}

	m := Medicine{
		ID:        uuid.NewString(),
		UserID:    userID,
		PatientID: strings.TrimSpace(in.PatientID),
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Unit:      strings.TrimSpace(in.Unit),
		Frequency: freq,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
	}

	rows := ExpandSchedules(m, meta, times, now)

	if err := s.repo.CreateWithSchedules(ctx, m, rows); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// Delete borra la medicina del usuario junto con todas sus tomas.
func (s *Service) Delete(ctx context.Context, userID, medicineID string) error {
	medicineID = strings.TrimSpace(medicineID)
	if strings.TrimSpace(userID) == "" || medicineID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteOwned(ctx, userID, medicineID)
}
