package history

import (
	"time"

	"healbot/internal/domain/schedules"
)

// Entry es una fila de la proyección de historial: toma + medicina + familiar.
// Es solo lectura; no hay mutaciones desde este módulo.
type Entry struct {
	ScheduleID string
	MedicineID string
	PatientID  string

	PatientName  string // vacío si la medicina no tiene familiar asociado
	MedicineName string

	Frequency string
	Dosage    string
	Status    schedules.Status

	TimeOfDay   string
	ScheduledAt time.Time
	TakenAt     *time.Time

	// EffectiveAt es TakenAt si la toma fue registrada, si no el instante
	// agendado; es la clave de orden del historial (descendente).
	EffectiveAt time.Time

	CreatedAt time.Time
}
