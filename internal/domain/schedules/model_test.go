package schedules

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.January || d.Day() != 2 {
		t.Fatalf("got %v", d)
	}
	if d.Location() != time.UTC {
		t.Fatalf("expected UTC calendar, got %v", d.Location())
	}

	if _, err := ParseDate("02/01/2025"); err == nil {
		t.Fatalf("expected error for non-civil format")
	}
}

func TestComposeInstant(t *testing.T) {
	d, _ := ParseDate("2025-01-02")

	got := ComposeInstant(d, "08:30")
	want := time.Date(2025, 1, 2, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("HH:MM: got %v, want %v", got, want)
	}

	got = ComposeInstant(d, "08:30:45")
	want = time.Date(2025, 1, 2, 8, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("HH:MM:SS: got %v, want %v", got, want)
	}

	// Token malformado colapsa a medianoche, nunca panic.
	got = ComposeInstant(d, "whenever")
	want = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("malformed token: got %v, want %v", got, want)
	}
}

func TestScheduledAt_OrdersAcrossDays(t *testing.T) {
	d1, _ := ParseDate("2025-01-01")
	d2, _ := ParseDate("2025-01-02")

	late := Schedule{Date: d1, TimeOfDay: "20:00"}
	early := Schedule{Date: d2, TimeOfDay: "08:00"}

	// El instante compuesto manda: la noche del día 1 va antes que la mañana
	// del día 2, cosa que ni la fecha ni la hora sueltas garantizan.
	if !late.ScheduledAt().Before(early.ScheduledAt()) {
		t.Fatalf("expected %v < %v", late.ScheduledAt(), early.ScheduledAt())
	}
}
