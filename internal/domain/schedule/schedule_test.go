package schedule

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate_Days(t *testing.T) {
	got, ok := NextDueDate(date(2025, 3, 1), Interval{Value: 35, Unit: UnitDays})
	if !ok {
		t.Fatal("expected ok")
	}
	if want := date(2025, 4, 5); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestNextDueDate_MonthEndClamp(t *testing.T) {
	// 31-ene + 1 mes debe caer en fin de febrero, no desbordar a marzo
	got, ok := NextDueDate(date(2024, 1, 31), Interval{Value: 1, Unit: UnitMonths})
	if !ok {
		t.Fatal("expected ok")
	}
	if want := date(2024, 2, 29); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}

	// año no bisiesto
	got, _ = NextDueDate(date(2025, 1, 31), Interval{Value: 1, Unit: UnitMonths})
	if want := date(2025, 2, 28); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestNextDueDate_LeapYear(t *testing.T) {
	got, ok := NextDueDate(date(2024, 2, 29), Interval{Value: 1, Unit: UnitYears})
	if !ok {
		t.Fatal("expected ok")
	}
	if want := date(2025, 2, 28); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestNextDueDate_InvalidInterval(t *testing.T) {
	cases := []Interval{
		{Value: 0, Unit: UnitDays},
		{Value: -3, Unit: UnitMonths},
		{Value: 1, Unit: Unit("fortnights")},
		{},
	}
	for _, iv := range cases {
		if _, ok := NextDueDate(date(2025, 1, 1), iv); ok {
			t.Fatalf("interval %+v should be invalid", iv)
		}
	}
}

func TestClassify(t *testing.T) {
	now := date(2025, 6, 15)

	cases := []struct {
		name      string
		due       time.Time
		daysAhead int
		want      Status
	}{
		{"overdue ayer", date(2025, 6, 14), 7, StatusOverdue},
		{"vence hoy es upcoming", date(2025, 6, 15), 0, StatusUpcoming},
		{"dentro de ventana", date(2025, 6, 20), 7, StatusUpcoming},
		{"borde de ventana", date(2025, 6, 22), 7, StatusUpcoming},
		{"fuera de ventana", date(2025, 6, 23), 7, StatusUpToDate},
		{"ventana cero, mañana", date(2025, 6, 16), 0, StatusUpToDate},
		{"daysAhead negativo se clampa", date(2025, 6, 15), -5, StatusUpcoming},
	}

	for _, tc := range cases {
		if got := Classify(tc.due, now, tc.daysAhead); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	// due a las 23:59 del mismo día sigue siendo upcoming, no overdue
	now := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	due := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	if got := Classify(due, now, 0); got != StatusUpcoming {
		t.Fatalf("got %s want upcoming", got)
	}
}

func TestDaysUntil(t *testing.T) {
	now := date(2025, 6, 15)
	if got := DaysUntil(date(2025, 6, 20), now); got != 5 {
		t.Fatalf("got %d want 5", got)
	}
	if got := DaysUntil(date(2025, 6, 10), now); got != -5 {
		t.Fatalf("got %d want -5", got)
	}
	if got := DaysUntil(now, now); got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}

// Propiedad: exactamente un estado aplica siempre, y el resultado es
// estable entre llamadas repetidas con los mismos inputs.
func TestClassify_Partition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := date(2025, 1, 1).AddDate(0, 0, rapid.IntRange(-3650, 3650).Draw(t, "nowOffset"))
		due := now.AddDate(0, 0, rapid.IntRange(-400, 400).Draw(t, "dueOffset"))
		daysAhead := rapid.IntRange(0, 120).Draw(t, "daysAhead")

		got := Classify(due, now, daysAhead)

		switch got {
		case StatusOverdue:
			if !Day(due).Before(Day(now)) {
				t.Fatalf("overdue pero due >= now")
			}
		case StatusUpcoming:
			if Day(due).Before(Day(now)) || Day(due).After(Day(now).AddDate(0, 0, daysAhead)) {
				t.Fatalf("upcoming fuera de ventana")
			}
		case StatusUpToDate:
			if !Day(due).After(Day(now).AddDate(0, 0, daysAhead)) {
				t.Fatalf("up_to_date dentro de ventana")
			}
		default:
			t.Fatalf("estado desconocido %q", got)
		}

		if again := Classify(due, now, daysAhead); again != got {
			t.Fatalf("no determinista: %s vs %s", got, again)
		}
	})
}

// Propiedad: agrandar la ventana nunca saca un ítem del conjunto
// accionable (upcoming/overdue).
func TestClassify_WindowMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := date(2025, 1, 1)
		due := now.AddDate(0, 0, rapid.IntRange(-200, 200).Draw(t, "dueOffset"))
		d1 := rapid.IntRange(0, 90).Draw(t, "d1")
		d2 := d1 + rapid.IntRange(0, 90).Draw(t, "extra")

		s1 := Classify(due, now, d1)
		s2 := Classify(due, now, d2)

		if s1 != StatusUpToDate && s2 == StatusUpToDate {
			t.Fatalf("ítem accionable con ventana %d dejó de serlo con ventana %d", d1, d2)
		}
	})
}
