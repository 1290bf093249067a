package foodstock

import (
	"time"

	"github.com/shopspring/decimal"
)

// FoodStock es el inventario de alimento de una mascota. Un registro
// por mascota; el staff lo actualiza al recibir o pesar alimento.
type FoodStock struct {
	PetID string

	CurrentGrams decimal.Decimal
	DailyGrams   decimal.Decimal

	// AlertThresholdDays: con cuántos días de anticipación avisar.
	// Lo configura el admin; el motor solo lo lee.
	AlertThresholdDays int

	UpdatedAt time.Time
}

// Projection es el derivado que consumen la API y el sweep.
type Projection struct {
	PetID         string
	DaysRemaining int
	RestockAt     time.Time
	Low           bool // días restantes <= umbral
}
