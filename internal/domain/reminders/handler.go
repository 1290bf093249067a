package reminders

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/middleware"
)

const defaultDaysAhead = 7

func RegisterRoutes(r chi.Router, svc *Service, sw *Sweeper) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/upcoming", upcomingHandler(svc))

		// Punto de entrada del scheduler (y del disparo manual del admin)
		rr.Post("/send", sendHandler(sw))
	})
}

type reminderItemResponse struct {
	RecordID  string             `json:"record_id"`
	PetID     string             `json:"pet_id"`
	PetName   string             `json:"pet_name"`
	Category  careitems.Category `json:"category"`
	ItemName  string             `json:"item_name"`
	DueAt     time.Time          `json:"due_at"`
	Status    schedule.Status    `json:"status"`
	DaysUntil int                `json:"days_until"`
}

type summaryResponse struct {
	Vaccinations        []reminderItemResponse `json:"vaccinations"`
	Medications         []reminderItemResponse `json:"medications"`
	FleaTreatments      []reminderItemResponse `json:"flea_treatments"`
	DewormingTreatments []reminderItemResponse `json:"deworming_treatments"`
	Total               int                    `json:"total"`
}

// upcomingHandler godoc
// @Summary Vencimientos próximos y atrasados
// @Description Recorre los registros activos de todas las mascotas y devuelve lo accionable (upcoming/overdue) agrupado por categoría. total == suma de las cuatro listas.
// @Tags reminders
// @Produce json
// @Param days query int false "Ventana de días hacia adelante (default 7)"
// @Success 200 {object} summaryResponse
// @Failure 400 {string} string "days inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /reminders/upcoming [get]
func upcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days, err := parseDays(r.URL.Query().Get("days"))
		if err != nil {
			http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}

		summary, err := svc.Upcoming(r.Context(), days)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toSummaryResponse(summary))
	}
}

// sendHandler godoc
// @Summary Ejecutar barrido de recordatorios
// @Description Filtra contra el ledger de dedup y envía un mensaje consolidado por tutor. Idempotente por día: repetir la llamada no reenvía.
// @Tags reminders
// @Produce json
// @Param days query int false "Ventana de días hacia adelante (default 7)"
// @Success 200 {object} Result
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {object} Result "algún envío falló; los ítems no marcados reintentan en el próximo barrido"
// @Router /reminders/send [post]
func sendHandler(sw *Sweeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days, err := parseDays(r.URL.Query().Get("days"))
		if err != nil {
			http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}

		res := sw.SendHealthReminders(r.Context(), days)

		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, res)
	}
}

func parseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultDaysAhead, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

func toSummaryResponse(s Summary) summaryResponse {
	conv := func(items []Item) []reminderItemResponse {
		out := make([]reminderItemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, reminderItemResponse{
				RecordID:  it.RecordID,
				PetID:     it.PetID,
				PetName:   it.PetName,
				Category:  it.Category,
				ItemName:  it.ItemName,
				DueAt:     it.DueAt,
				Status:    it.Status,
				DaysUntil: it.DaysUntil,
			})
		}
		return out
	}

	return summaryResponse{
		Vaccinations:        conv(s.Vaccinations),
		Medications:         conv(s.Medications),
		FleaTreatments:      conv(s.FleaTreatments),
		DewormingTreatments: conv(s.DewormingTreatments),
		Total:               s.Total,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
