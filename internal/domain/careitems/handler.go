package careitems

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/care-items", func(cr chi.Router) {
		cr.Post("/", createItemHandler(svc))
		cr.Get("/", listItemsHandler(svc))
		cr.Get("/{itemID}", getItemHandler(svc))
		cr.Patch("/{itemID}", updateIntervalHandler(svc))
	})
}

type createItemRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category" enums:"vaccination,medication,flea,deworming"`
	IntervalValue int    `json:"interval_value"`
	IntervalUnit  string `json:"interval_unit" enums:"days,months,years"`
	DosesRequired *int   `json:"doses_required"`
}

type updateItemRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	IntervalValue *int    `json:"interval_value"`
	IntervalUnit  *string `json:"interval_unit"`
	DosesRequired *int    `json:"doses_required"`
}

type itemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      Category  `json:"category"`
	IntervalValue int       `json:"interval_value"`
	IntervalUnit  string    `json:"interval_unit"`
	DosesRequired *int      `json:"doses_required,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// createItemHandler godoc
// @Summary Crear ítem de la biblioteca de cuidados
// @Description Registra una vacuna, medicamento o producto preventivo con su regla de intervalo. Solo admin/staff autenticado.
// @Tags care-items
// @Accept json
// @Produce json
// @Param payload body createItemRequest true "Datos del ítem"
// @Success 201 {object} itemResponse
// @Failure 400 {string} string "invalid json / intervalo inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /care-items [post]
func createItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ci, err := svc.Create(r.Context(), CreateInput{
			Name:          req.Name,
			Category:      Category(strings.TrimSpace(req.Category)),
			IntervalValue: req.IntervalValue,
			IntervalUnit:  schedule.Unit(strings.TrimSpace(req.IntervalUnit)),
			DosesRequired: req.DosesRequired,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toItemResponse(ci))
	}
}

// listItemsHandler godoc
// @Summary Listar ítems por categoría
// @Tags care-items
// @Produce json
// @Param category query string true "vaccination|medication|flea|deworming"
// @Success 200 {array} itemResponse
// @Failure 400 {string} string "categoría inválida"
// @Router /care-items [get]
func listItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c := Category(strings.TrimSpace(r.URL.Query().Get("category")))
		items, err := svc.ListByCategory(r.Context(), c)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid category", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]itemResponse, 0, len(items))
		for _, ci := range items {
			out = append(out, toItemResponse(ci))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ci, err := svc.GetByID(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			http.Error(w, "care item not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(ci))
	}
}

// updateIntervalHandler godoc
// @Summary Actualizar regla de intervalo de un ítem
// @Description Superficie de configuración del admin. Los registros existentes no se recalculan.
// @Tags care-items
// @Accept json
// @Produce json
// @Param itemID path string true "ID del ítem"
// @Param payload body updateItemRequest true "Campos a modificar"
// @Success 200 {object} itemResponse
// @Failure 400 {string} string "intervalo inválido"
// @Failure 404 {string} string "care item not found"
// @Router /care-items/{itemID} [patch]
func updateIntervalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var unit *schedule.Unit
		if req.IntervalUnit != nil {
			u := schedule.Unit(strings.TrimSpace(*req.IntervalUnit))
			unit = &u
		}

		ci, err := svc.UpdateInterval(r.Context(), chi.URLParam(r, "itemID"), UpdateIntervalInput{
			IntervalValue: req.IntervalValue,
			IntervalUnit:  unit,
			DosesRequired: req.DosesRequired,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "care item not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toItemResponse(ci))
	}
}

func toItemResponse(ci CareItem) itemResponse {
	return itemResponse{
		ID:            ci.ID,
		Name:          ci.Name,
		Category:      ci.Category,
		IntervalValue: ci.Interval.Value,
		IntervalUnit:  string(ci.Interval.Unit),
		DosesRequired: ci.DosesRequired,
		CreatedAt:     ci.CreatedAt,
		UpdatedAt:     ci.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
