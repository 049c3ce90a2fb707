package patients

import "context"

type Repository interface {
	Create(ctx context.Context, p Patient) error
	ListByUser(ctx context.Context, userID string) ([]Patient, error)

	// DeleteCascade borra, en este orden, las tomas de las medicinas del
	// familiar, luego esas medicinas y por último al familiar: ninguna
	// medicina ni toma sobrevive a su padre.
	DeleteCascade(ctx context.Context, userID, patientID string) error
}
