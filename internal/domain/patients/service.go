package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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
	Name         string
	Relationship string
	Age          int
	BloodType    string
	Phone        string
	Emergency    string
	History      string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Patient, error) {
	if strings.TrimSpace(userID) == "" {
		return Patient{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Patient{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if in.Age < 0 {
		return Patient{}, fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}

	now := s.now()
	p := Patient{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Relationship: strings.TrimSpace(in.Relationship),
		Age:          in.Age,
		BloodType:    strings.TrimSpace(in.BloodType),
		Phone:        strings.TrimSpace(in.Phone),
		Emergency:    strings.TrimSpace(in.Emergency),
		History:      strings.TrimSpace(in.History),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Patient, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// Delete elimina al familiar con cascada completa (tomas → medicinas → familiar).
// Funciona uniforme para cualquier id; no existe ningún familiar "protegido".
func (s *Service) Delete(ctx context.Context, userID, patientID string) error {
	patientID = strings.TrimSpace(patientID)
	if strings.TrimSpace(userID) == "" || patientID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteCascade(ctx, userID, patientID)
}
