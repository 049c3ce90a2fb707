package medicines

import (
	"context"

	"healbot/internal/domain/schedules"
)

type Repository interface {
	// CreateWithSchedules persiste la medicina y sus tomas generadas en una
	// sola transacción: o queda todo o no queda nada. La inserción de cada
	// toma es idempotente sobre (medicina, fecha, hora); un duplicado se
	// ignora sin fallar la operación.
	CreateWithSchedules(ctx context.Context, m Medicine, rows []schedules.Schedule) error

	ListByUser(ctx context.Context, userID string) ([]Medicine, error)

	// DeleteOwned borra la medicina del usuario y, antes, todas sus tomas.
	DeleteOwned(ctx context.Context, userID, medicineID string) error
}
