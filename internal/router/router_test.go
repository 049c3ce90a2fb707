package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"healbot/internal/router"
)

func TestHTTP_EndToEnd_MedicineLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "user-1"
	strangerID := "user-2"

	// 1) Usuario registra a su familiar
	patientID := createPatient(t, ts.URL, userID, map[string]any{
		"name":         "Abuela",
		"relationship": "grandmother",
		"age":          78,
	})

	// 2) Alta de medicina TWICE_DAILY por 3 días => 6 tomas
	medicineID := createMedicine(t, ts.URL, userID, map[string]any{
		"name":       "Paracetamol",
		"dosage":     "500",
		"unit":       "mg",
		"patient_id": patientID,
		"frequency":  "TWICE_DAILY",
		"times":      []string{"08:00", "20:00"},
		"startDate":  "2025-01-01",
		"endDate":    "2025-01-03",
	})

	allRows := listSchedules(t, ts.URL, userID, "")
	if len(allRows) != 6 {
		t.Fatalf("expected 6 generated schedules, got %d", len(allRows))
	}

	// Orden ascendente por instante compuesto
	if allRows[0].ScheduleDate != "2025-01-01" || allRows[0].Time != "08:00" {
		t.Fatalf("unexpected first row: %+v", allRows[0])
	}
	if allRows[5].ScheduleDate != "2025-01-03" || allRows[5].Time != "20:00" {
		t.Fatalf("unexpected last row: %+v", allRows[5])
	}
	for _, row := range allRows {
		if row.MedicineID != medicineID || row.Dosage != "500 mg" || row.Status != "pending" {
			t.Fatalf("unexpected row contents: %+v", row)
		}
		if row.MedicineName != "Paracetamol" || row.PatientID != patientID {
			t.Fatalf("row missing medicine join data: %+v", row)
		}
	}

	// 3) Filtro por día
	dayRows := listSchedules(t, ts.URL, userID, "?date=2025-01-02")
	if len(dayRows) != 2 {
		t.Fatalf("expected 2 schedules on 2025-01-02, got %d", len(dayRows))
	}
	if dayRows[0].Time != "08:00" || dayRows[1].Time != "20:00" {
		t.Fatalf("unexpected day ordering: %+v", dayRows)
	}

	// 4) Aislamiento: otro usuario no ve nada ni puede marcar tomas ajenas
	{
		if rows := listSchedules(t, ts.URL, strangerID, ""); len(rows) != 0 {
			t.Fatalf("expected empty list for stranger, got %d rows", len(rows))
		}
		st, _ := doReq(t, ts.URL, "PUT", "/schedules/"+allRows[0].ID+"/taken", strangerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 marking foreign schedule, got %d", st)
		}
	}

	// 5) Marcar tomada; repetir el PUT sigue siendo 200
	{
		st, body := doReq(t, ts.URL, "PUT", "/schedules/"+allRows[0].ID+"/taken", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark taken, got %d body=%s", st, string(body))
		}

		var resp struct {
			Status  string  `json:"status"`
			TakenAt *string `json:"taken_at"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "taken" || resp.TakenAt == nil {
			t.Fatalf("unexpected mark-taken response: %s", string(body))
		}

		st, _ = doReq(t, ts.URL, "PUT", "/schedules/"+allRows[0].ID+"/taken", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 re-marking taken, got %d", st)
		}
	}

	// 6) El historial arranca con la toma recién tomada (instante efectivo)
	{
		st, body := doReq(t, ts.URL, "GET", "/history?patient_id="+patientID, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}

		var entries []struct {
			ID          string `json:"id"`
			PatientName string `json:"patient_name"`
			Medicine    string `json:"medicine"`
			Status      string `json:"status"`
		}
		_ = json.Unmarshal(body, &entries)
		if len(entries) != 6 {
			t.Fatalf("expected 6 history entries, got %d", len(entries))
		}
		if entries[0].ID != allRows[0].ID || entries[0].Status != "taken" {
			t.Fatalf("expected taken dose first in history, got %+v", entries[0])
		}
		if entries[0].PatientName != "Abuela" || entries[0].Medicine != "Paracetamol" {
			t.Fatalf("history entry missing joined names: %+v", entries[0])
		}
	}

	// 7) Borrar una toma puntual; sus hermanas sobreviven
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/schedules/"+allRows[1].ID, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete schedule, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/schedules/"+allRows[1].ID, userID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
		if rows := listSchedules(t, ts.URL, userID, ""); len(rows) != 5 {
			t.Fatalf("expected 5 schedules after single delete, got %d", len(rows))
		}
	}

	// 8) Borrar la medicina arrastra todas sus tomas
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/medicines/"+medicineID, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete medicine, got %d", st)
		}
		if rows := listSchedules(t, ts.URL, userID, ""); len(rows) != 0 {
			t.Fatalf("expected no schedules after medicine delete, got %d", len(rows))
		}
	}

	// 9) Cascade completo al borrar al familiar
	{
		med2 := createMedicine(t, ts.URL, userID, map[string]any{
			"name":       "Ibuprofeno",
			"dosage":     "400",
			"unit":       "mg",
			"patient_id": patientID,
			"frequency":  "ONCE_DAILY",
			"times":      []string{"09:00"},
			"startDate":  "2025-02-01",
			"endDate":    "2025-02-05",
		})
		if med2 == "" {
			t.Fatal("expected medicine id")
		}

		st, _ := doReq(t, ts.URL, "DELETE", "/patients/"+patientID, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete patient, got %d", st)
		}

		if rows := listSchedules(t, ts.URL, userID, ""); len(rows) != 0 {
			t.Fatalf("expected no schedules after patient cascade, got %d", len(rows))
		}

		st, body := doReq(t, ts.URL, "GET", "/medicines", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list medicines, got %d", st)
		}
		var meds []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &meds)
		if len(meds) != 0 {
			t.Fatalf("expected no medicines after patient cascade, got %d", len(meds))
		}
	}
}

func TestHTTP_CreateMedicine_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "user-1"

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{
			name: "end before start",
			payload: map[string]any{
				"name": "Paracetamol", "dosage": "500", "unit": "mg",
				"startDate": "2025-01-10", "endDate": "2025-01-01",
			},
		},
		{
			name: "unknown frequency",
			payload: map[string]any{
				"name": "Paracetamol", "dosage": "500", "unit": "mg",
				"frequency": "HOURLY",
			},
		},
		{
			name: "custom times out of range",
			payload: map[string]any{
				"name": "Paracetamol", "dosage": "500", "unit": "mg",
				"frequency": "CUSTOM", "customTimesCount": 7, "customStepDays": 1,
			},
		},
		{
			name: "custom step out of range",
			payload: map[string]any{
				"name": "Paracetamol", "dosage": "500", "unit": "mg",
				"frequency": "CUSTOM", "customTimesCount": 2, "customStepDays": 31,
			},
		},
		{
			name: "times count mismatch",
			payload: map[string]any{
				"name": "Paracetamol", "dosage": "500", "unit": "mg",
				"frequency": "TWICE_DAILY", "times": []string{"08:00"},
			},
		},
		{
			name: "missing name",
			payload: map[string]any{
				"dosage": "500", "unit": "mg",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", "/medicines", userID, tc.payload)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
		})
	}

	// Nada quedó persistido por los intentos inválidos.
	if rows := listSchedules(t, ts.URL, userID, ""); len(rows) != 0 {
		t.Fatalf("expected no schedules after failed creates, got %d", len(rows))
	}
}

func TestHTTP_RequiresAuth(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// Sin X-Debug-User-ID ni token: cada recurso responde 401.
	for _, path := range []string{"/patients", "/medicines", "/schedules", "/history"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without auth, got %d", path, st)
		}
	}

	// /health queda abierto.
	st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
}

type scheduleRow struct {
	ID           string `json:"id"`
	MedicineID   string `json:"medicine_id"`
	ScheduleDate string `json:"schedule_date"`
	Time         string `json:"time"`
	Dosage       string `json:"dosage"`
	Status       string `json:"status"`
	MedicineName string `json:"medicine_name"`
	PatientID    string `json:"patient_id"`
}

func listSchedules(t *testing.T, baseURL, userID, query string) []scheduleRow {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/schedules"+query, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list schedules, got %d body=%s", st, string(body))
	}

	var rows []scheduleRow
	if err := json.Unmarshal(body, &rows); err != nil {
		t.Fatalf("unmarshal schedules: %v body=%s", err, string(body))
	}
	return rows
}

func createPatient(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create patient, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create patient: missing id body=%s", string(body))
	}
	return resp.ID
}

func createMedicine(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medicines", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medicine, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create medicine: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
