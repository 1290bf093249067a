package foodstock

import (
	"time"

	"github.com/shopspring/decimal"

	"pet-care-reminders/internal/domain/schedule"
)

// StockDuration devuelve los días de alimento que quedan:
// floor(stock / consumo diario). Consumo cero o negativo no es error:
// devuelve 0 ("sin consumo, sin cuenta regresiva"), nunca divide.
func StockDuration(currentGrams, dailyGrams decimal.Decimal) int {
	if dailyGrams.Sign() <= 0 {
		return 0
	}
	return int(currentGrams.Div(dailyGrams).Floor().IntPart())
}

// RestockDate proyecta cuándo hay que reponer: hoy + max(0, díasRestantes
// − umbral). Si el stock ya está en o bajo el umbral, la reposición es
// hoy mismo (caso definido, no error).
func RestockDate(currentGrams, dailyGrams decimal.Decimal, alertThresholdDays int, now time.Time) time.Time {
	if alertThresholdDays < 0 {
		alertThresholdDays = 0
	}

	offset := StockDuration(currentGrams, dailyGrams) - alertThresholdDays
	if offset < 0 {
		offset = 0
	}
	return schedule.Day(now).AddDate(0, 0, offset)
}
