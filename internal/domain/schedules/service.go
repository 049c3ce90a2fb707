package schedules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
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

// ListByDate devuelve las tomas del usuario con fecha igual a `date` (YYYY-MM-DD).
func (s *Service) ListByDate(ctx context.Context, userID, date string) ([]Row, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return s.repo.List(ctx, userID, ListFilter{Date: &d})
}

// ListFrom devuelve las tomas estrictamente posteriores a `from` (YYYY-MM-DD).
func (s *Service) ListFrom(ctx context.Context, userID, from string) ([]Row, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	d, err := ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
	}
	return s.repo.List(ctx, userID, ListFilter{From: &d})
}

// ListAll devuelve todas las tomas del usuario sin filtro de fecha.
func (s *Service) ListAll(ctx context.Context, userID string) ([]Row, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, userID, ListFilter{})
}

// MarkTaken transiciona pending→taken y sella taken_at con la hora actual.
// Re-marcar una toma ya tomada vuelve a sellar taken_at: es comportamiento
// aceptado del dominio, no un error.
func (s *Service) MarkTaken(ctx context.Context, userID, scheduleID string) (Schedule, error) {
	scheduleID = strings.TrimSpace(scheduleID)
	if strings.TrimSpace(userID) == "" || scheduleID == "" {
		return Schedule{}, ErrInvalidInput
	}
	return s.repo.MarkTaken(ctx, userID, scheduleID, s.now())
}

// Delete borra una única toma del usuario.
func (s *Service) Delete(ctx context.Context, userID, scheduleID string) error {
	scheduleID = strings.TrimSpace(scheduleID)
	if strings.TrimSpace(userID) == "" || scheduleID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteOwned(ctx, userID, scheduleID)
}
