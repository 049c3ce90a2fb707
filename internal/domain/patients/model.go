package patients

import "time"

// Patient representa a un familiar registrado por un usuario: la ficha de la
// que cuelgan medicinas y tomas.
type Patient struct {
	ID     string
	UserID string

	Name         string
	Relationship string

	Age       int
	BloodType string

	Phone     string
	Emergency string // contacto de emergencia

	History string // antecedentes médicos, texto libre

	CreatedAt time.Time
	UpdatedAt time.Time
}
