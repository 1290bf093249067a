package foodstock

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/food-stock", func(fr chi.Router) {
		fr.Put("/", upsertStockHandler(svc, petsSvc))
		fr.Get("/", getStockHandler(svc, petsSvc))
	})

	r.Get("/food-stock/low", listLowStockHandler(svc))
}

type upsertStockRequest struct {
	CurrentGrams       string `json:"current_grams"`        // decimal como string: "15000" o "15000.5"
	DailyGrams         string `json:"daily_grams"`          // ídem
	AlertThresholdDays int    `json:"alert_threshold_days"` // configurado por admin
}

type stockResponse struct {
	PetID              string    `json:"pet_id"`
	CurrentGrams       string    `json:"current_grams"`
	DailyGrams         string    `json:"daily_grams"`
	AlertThresholdDays int       `json:"alert_threshold_days"`
	DaysRemaining      int       `json:"days_remaining"`
	RestockAt          time.Time `json:"restock_at"`
	Low                bool      `json:"low"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type lowStockResponse struct {
	PetID         string    `json:"pet_id"`
	DaysRemaining int       `json:"days_remaining"`
	RestockAt     time.Time `json:"restock_at"`
}

// upsertStockHandler godoc
// @Summary Actualizar stock de alimento de una mascota
// @Description Registra stock actual y consumo diario en gramos. Devuelve la proyección (días restantes, fecha de reposición).
// @Tags food-stock
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body upsertStockRequest true "Gramos como string decimal"
// @Success 200 {object} stockResponse
// @Failure 400 {string} string "gramos inválidos"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/food-stock [put]
func upsertStockHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var req upsertStockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		current, err := decimal.NewFromString(strings.TrimSpace(req.CurrentGrams))
		if err != nil {
			http.Error(w, "current_grams must be a decimal number", http.StatusBadRequest)
			return
		}
		daily, err := decimal.NewFromString(strings.TrimSpace(req.DailyGrams))
		if err != nil {
			http.Error(w, "daily_grams must be a decimal number", http.StatusBadRequest)
			return
		}

		fs, err := svc.Upsert(r.Context(), petID, UpsertInput{
			CurrentGrams:       current,
			DailyGrams:         daily,
			AlertThresholdDays: req.AlertThresholdDays,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toStockResponse(svc, fs))
	}
}

func getStockHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		fs, err := svc.GetByPet(r.Context(), petID)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "food stock not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toStockResponse(svc, fs))
	}
}

// listLowStockHandler godoc
// @Summary Mascotas con stock bajo
// @Description Lista las mascotas cuyo alimento está en o bajo el umbral de alerta.
// @Tags food-stock
// @Produce json
// @Success 200 {array} lowStockResponse
// @Router /food-stock/low [get]
func listLowStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		low, err := svc.ListLow(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]lowStockResponse, 0, len(low))
		for _, p := range low {
			out = append(out, lowStockResponse{
				PetID:         p.PetID,
				DaysRemaining: p.DaysRemaining,
				RestockAt:     p.RestockAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toStockResponse(svc *Service, fs FoodStock) stockResponse {
	p := svc.Project(fs)
	return stockResponse{
		PetID:              fs.PetID,
		CurrentGrams:       fs.CurrentGrams.String(),
		DailyGrams:         fs.DailyGrams.String(),
		AlertThresholdDays: fs.AlertThresholdDays,
		DaysRemaining:      p.DaysRemaining,
		RestockAt:          p.RestockAt,
		Low:                p.Low,
		UpdatedAt:          fs.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
