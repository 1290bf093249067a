package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/care-records", func(rr chi.Router) {
		rr.Post("/", logRecordHandler(svc, petsSvc))
		rr.Get("/", listRecordsHandler(svc, petsSvc))

		// Descontinuar (soft delete): el registro queda en el historial
		rr.Post("/{recordID}/deactivate", deactivateRecordHandler(svc, petsSvc))
	})
}

type logRecordRequest struct {
	ItemID    string `json:"item_id"`
	AppliedAt string `json:"applied_at"` // YYYY-MM-DD
	Notes     string `json:"notes"`
}

type recordResponse struct {
	ID         string             `json:"id"`
	PetID      string             `json:"pet_id"`
	ItemID     string             `json:"item_id"`
	Category   careitems.Category `json:"category"`
	AppliedAt  time.Time          `json:"applied_at"`
	RecordedAt time.Time          `json:"recorded_at"`
	NextDueAt  *time.Time         `json:"next_due_at,omitempty"`
	Active     bool               `json:"active"`
	Notes      string             `json:"notes"`
}

// logRecordHandler godoc
// @Summary Registrar aplicación de cuidado
// @Description Registra una vacuna/medicación/preventivo aplicado a la mascota. next_due_at se calcula con la regla de intervalo del ítem.
// @Tags care-records
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body logRecordRequest true "applied_at en formato YYYY-MM-DD"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / applied_at inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/care-records [post]
func logRecordHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		var req logRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		applied, err := time.Parse("2006-01-02", strings.TrimSpace(req.AppliedAt))
		if err != nil {
			http.Error(w, "applied_at must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.Log(r.Context(), petID, LogInput{
			ItemID:    req.ItemID,
			AppliedAt: applied,
			Notes:     req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Historial de cuidados de una mascota
// @Tags care-records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} recordResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/care-records [get]
func listRecordsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deactivateRecordHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		rec, err := svc.Deactivate(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "care record not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func toRecordResponse(rec CareRecord) recordResponse {
	return recordResponse{
		ID:         rec.ID,
		PetID:      rec.PetID,
		ItemID:     rec.ItemID,
		Category:   rec.Category,
		AppliedAt:  rec.AppliedAt,
		RecordedAt: rec.RecordedAt,
		NextDueAt:  rec.NextDueAt,
		Active:     rec.Active,
		Notes:      rec.Notes,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
