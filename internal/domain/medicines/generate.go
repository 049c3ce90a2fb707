package medicines

import (
	"time"

	"healbot/internal/domain/schedules"

	"github.com/google/uuid"
)

// MaxGeneratedDates acota el fan-out de la expansión: ningún rango genera más
// de un año de fechas por medicina, aunque el caller pida décadas. El tope es
// sobre fechas, no sobre filas (cada fecha multiplica por las horas).
const MaxGeneratedDates = 365

// ExpandSchedules materializa cada instancia (fecha, hora) del rango de la
// medicina: avanza de StartDate a EndDate inclusive, de a StepDays días
// calendario (AddDate, nunca aritmética de duraciones, para que DST o años
// bisiestos no corran la hora), y por cada fecha emite una toma pending por
// hora, con el snapshot de dosis "{dosis} {unidad}".
func ExpandSchedules(m Medicine, meta FreqMeta, times []string, now time.Time) []schedules.Schedule {
	out := make([]schedules.Schedule, 0, len(times))
	dosage := m.Dosage + " " + m.Unit

	dates := 0
	for d := m.StartDate; !d.After(m.EndDate); d = d.AddDate(0, 0, meta.StepDays) {
		dates++
		if dates > MaxGeneratedDates {
			break
		}

		for _, tm := range times {
			out = append(out, schedules.Schedule{
				ID:         uuid.NewString(),
				MedicineID: m.ID,
				Date:       d,
				TimeOfDay:  tm,
				Dosage:     dosage,
				Status:     schedules.StatusPending,
				CreatedAt:  now,
			})
		}
	}

	return out
}
