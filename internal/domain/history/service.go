package history

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Query devuelve el historial del usuario; patientID vacío = todos los familiares.
func (s *Service) Query(ctx context.Context, userID, patientID string) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Query(ctx, userID, strings.TrimSpace(patientID))
}
