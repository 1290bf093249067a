// Package schedule contiene el cálculo puro de fechas de vencimiento
// para el plan preventivo (vacunas, medicación, antipulgas, vermífugo).
// Todo recibe "now" explícito: nada aquí lee el reloj global.
package schedule

import "time"

// Unit es la unidad del intervalo de recurrencia.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// Interval define cada cuánto vence una aplicación (ej: 1 año, 3 meses, 35 días).
type Interval struct {
	Value int
	Unit  Unit
}

// Valid reporta si el intervalo produce una fecha de vencimiento.
func (iv Interval) Valid() bool {
	if iv.Value <= 0 {
		return false
	}
	switch iv.Unit {
	case UnitDays, UnitMonths, UnitYears:
		return true
	default:
		return false
	}
}

// Status clasifica un vencimiento relativo a "hoy" y una ventana de días.
type Status string

const (
	StatusUpToDate Status = "up_to_date"
	StatusUpcoming Status = "upcoming"
	StatusOverdue  Status = "overdue"
)

// NextDueDate suma el intervalo a la fecha de aplicación usando aritmética
// de calendario. Para meses/años el día se ajusta al último día del mes
// destino (31-ene + 1 mes => 29-feb en bisiesto, no 2-mar).
// ok=false cuando el intervalo no es válido: el registro queda "sin fecha"
// y los llamadores lo excluyen de recordatorios.
func NextDueDate(applied time.Time, iv Interval) (time.Time, bool) {
	if !iv.Valid() {
		return time.Time{}, false
	}

	d := Day(applied)

	switch iv.Unit {
	case UnitDays:
		return d.AddDate(0, 0, iv.Value), true
	case UnitMonths:
		return addMonthsClamped(d, iv.Value), true
	case UnitYears:
		return addMonthsClamped(d, iv.Value*12), true
	}
	return time.Time{}, false
}

// addMonthsClamped evita la normalización de AddDate: si el día original
// no existe en el mes destino, se usa el último día de ese mes.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	// time.Date normaliza month fuera de rango (ej: month=14 => feb del año siguiente)
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(firstOfTarget); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysIn devuelve la cantidad de días del mes de t.
func daysIn(t time.Time) int {
	// día 0 del mes siguiente == último día de este mes
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// Day trunca t a medianoche UTC. Toda la clasificación trabaja a
// granularidad de día para que dos sweeps del mismo día vean lo mismo.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify determina el estado de un vencimiento:
//   - overdue:  due < hoy
//   - upcoming: hoy <= due <= hoy + daysAhead
//   - up_to_date: todo lo demás
//
// daysAhead negativo se trata como 0.
func Classify(due, now time.Time, daysAhead int) Status {
	if daysAhead < 0 {
		daysAhead = 0
	}

	today := Day(now)
	d := Day(due)

	if d.Before(today) {
		return StatusOverdue
	}
	if !d.After(today.AddDate(0, 0, daysAhead)) {
		return StatusUpcoming
	}
	return StatusUpToDate
}

// DaysUntil devuelve días completos entre hoy y el vencimiento.
// Negativo si ya venció.
func DaysUntil(due, now time.Time) int {
	return int(Day(due).Sub(Day(now)).Hours() / 24)
}
