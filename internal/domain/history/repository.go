package history

import "context"

type Repository interface {
	// Query devuelve el historial del usuario (opcionalmente filtrado por
	// familiar), ordenado por EffectiveAt descendente; empates se resuelven
	// por creación más reciente.
	Query(ctx context.Context, userID, patientID string) ([]Entry, error)
}
