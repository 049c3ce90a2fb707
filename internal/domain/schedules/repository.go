package schedules

import (
	"context"
	"time"
)

type Repository interface {
	// List devuelve las tomas de medicinas del usuario, orden ascendente por
	// instante compuesto (fecha + hora).
	List(ctx context.Context, userID string, filter ListFilter) ([]Row, error)

	// MarkTaken marca la toma como tomada con sello de tiempo `at`, solo si la
	// medicina pertenece al usuario. Debe ser una actualización condicional
	// atómica (update con join + filas afectadas), no read-then-write.
	MarkTaken(ctx context.Context, userID, scheduleID string, at time.Time) (Schedule, error)

	// DeleteOwned borra exactamente una toma del usuario, sin tocar hermanas.
	DeleteOwned(ctx context.Context, userID, scheduleID string) error
}

type ListFilter struct {
	// Date filtra por igualdad de fecha civil (vista "hoy").
	Date *time.Time

	// From filtra por fecha estrictamente posterior (vista "próximas").
	From *time.Time
}
