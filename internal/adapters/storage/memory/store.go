package memory

import (
	"sync"
	"time"

	"healbot/internal/domain/medicines"
	"healbot/internal/domain/patients"
	"healbot/internal/domain/schedules"
)

// Store concentra los tres agregados bajo un único mutex. A diferencia de
// repos in-memory independientes, la generación atómica medicina+tomas y los
// cascades familiar→medicinas→tomas cruzan agregados, así que comparten un
// solo dominio de consistencia (el equivalente dev de la transacción SQL).
type Store struct {
	mu sync.RWMutex

	patients  map[string]patients.Patient
	medicines map[string]medicines.Medicine
	schedules map[string]schedules.Schedule

	// schedKeys indexa (medicina, fecha, hora) → schedule id para la
	// idempotencia de la generación (espejo del UNIQUE en Postgres).
	schedKeys map[string]string
}

func NewStore() *Store {
	return &Store{
		patients:  make(map[string]patients.Patient),
		medicines: make(map[string]medicines.Medicine),
		schedules: make(map[string]schedules.Schedule),
		schedKeys: make(map[string]string),
	}
}

func scheduleKey(medicineID string, date time.Time, timeOfDay string) string {
	return medicineID + "|" + date.Format(schedules.DateLayout) + "|" + timeOfDay
}

// deleteSchedulesOf asume el lock tomado.
func (st *Store) deleteSchedulesOf(medicineID string) {
	for id, sc := range st.schedules {
		if sc.MedicineID != medicineID {
			continue
		}
		delete(st.schedules, id)
		delete(st.schedKeys, scheduleKey(sc.MedicineID, sc.Date, sc.TimeOfDay))
	}
}
