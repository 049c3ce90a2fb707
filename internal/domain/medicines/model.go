package medicines

import "time"

// Medicine representa una medicina registrada para un familiar.
// Es inmutable una vez creada: solo existen alta y baja, nunca edición,
// así el snapshot de dosis en cada toma generada no puede quedar desfasado.
type Medicine struct {
	ID        string
	UserID    string
	PatientID string

	Name   string
	Dosage string // texto libre, p.ej. "500"
	Unit   string // p.ej. "mg"

	Frequency Frequency

	StartDate time.Time // fecha civil inclusive, medianoche UTC
	EndDate   time.Time // inclusive; nunca anterior a StartDate

	CreatedAt time.Time
}
