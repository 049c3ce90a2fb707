package schedules

import (
	"strings"
	"time"
)

// Status define el estado de una toma.
// @Enum pending, taken
type Status string

const (
	StatusPending Status = "pending"
	StatusTaken   Status = "taken"
)

// DateLayout es el formato de fecha civil (YYYY-MM-DD) usado en todo el sistema.
const DateLayout = "2006-01-02"

// Schedule representa una toma concreta (fecha + hora) generada para una medicina.
// No guarda user_id: la pertenencia se resuelve siempre vía su medicina.
type Schedule struct {
	ID         string
	MedicineID string

	Date      time.Time // fecha civil, medianoche UTC
	TimeOfDay string    // "HH:MM" o "HH:MM:SS"

	// Dosage es el snapshot "{dosis} {unidad}" capturado al generar;
	// no se recalcula nunca contra la medicina.
	Dosage string

	Status  Status
	TakenAt *time.Time

	CreatedAt time.Time
}

// Row es una toma enriquecida con datos de su medicina, para listados.
type Row struct {
	Schedule

	MedicineName string
	PatientID    string

	// ScheduledFor es el instante compuesto (fecha + hora); es la clave de orden.
	ScheduledFor time.Time
}

// ParseDate interpreta una fecha civil YYYY-MM-DD en el calendario fijo (UTC).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ComposeInstant compone (fecha, hora) en un único instante civil UTC.
// Es el único punto de conversión calendario+hora → instante: todo orden y
// ventana de recordatorio se calcula sobre este valor, nunca sobre los campos
// sueltos. Un token de hora malformado colapsa a medianoche.
func ComposeInstant(date time.Time, timeOfDay string) time.Time {
	tok := strings.TrimSpace(timeOfDay)

	layout := "15:04"
	if len(tok) == 8 {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, tok)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// ScheduledAt devuelve el instante compuesto de la toma.
func (s Schedule) ScheduledAt() time.Time {
	return ComposeInstant(s.Date, s.TimeOfDay)
}
