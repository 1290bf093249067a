package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pet-care-reminders/internal/router"
)

// captureNotifier registra los envíos en lugar de pegarle a un gateway real.
type captureNotifier struct {
	mu    sync.Mutex
	sent  []string // teléfonos
	texts []string
}

func (n *captureNotifier) Send(ctx context.Context, recipient, text string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recipient)
	n.texts = append(n.texts, text)
	return "test-msg-1", nil
}

func TestHTTP_EndToEnd_ReminderFlow(t *testing.T) {
	notifier := &captureNotifier{}
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-User-ID
		Notifier:     notifier,
	}))
	defer ts.Close()

	staffID := "staff-1"

	// 1) Staff carga un ítem en la biblioteca: vacuna cada 7 días (corto
	// para que el flujo caiga dentro de la ventana default)
	itemID := createJSON(t, ts.URL, "/care-items", staffID, map[string]any{
		"name":           "Antirrábica",
		"category":       "vaccination",
		"interval_value": 7,
		"interval_unit":  "days",
	})

	// 2) Staff inscribe una mascota con los datos del tutor
	petID := createJSON(t, ts.URL, "/pets", staffID, map[string]any{
		"name":        "Luna",
		"species":     "dog",
		"breed":       "mixed",
		"sex":         "female",
		"tutor_name":  "Ana",
		"tutor_phone": "+5491100000001",
	})

	// 3) Se registra la aplicación de hace 2 días: vence en 5
	applied := time.Now().UTC().AddDate(0, 0, -2).Format("2006-01-02")
	st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care-records", staffID, map[string]any{
		"item_id":    itemID,
		"applied_at": applied,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 logging record, got %d body=%s", st, string(body))
	}
	var rec struct {
		ID        string  `json:"id"`
		NextDueAt *string `json:"next_due_at"`
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if rec.NextDueAt == nil {
		t.Fatalf("expected computed next_due_at, got none")
	}

	// 4) El vencimiento aparece en el resumen
	st, body = doReq(t, ts.URL, "GET", "/reminders/upcoming", staffID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 upcoming, got %d body=%s", st, string(body))
	}
	var sum struct {
		Vaccinations []struct {
			RecordID string `json:"record_id"`
			Status   string `json:"status"`
		} `json:"vaccinations"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if sum.Total != 1 || len(sum.Vaccinations) != 1 {
		t.Fatalf("expected 1 vaccination reminder, got total=%d body=%s", sum.Total, string(body))
	}
	if sum.Vaccinations[0].RecordID != rec.ID {
		t.Fatalf("expected reminder for record %s, got %s", rec.ID, sum.Vaccinations[0].RecordID)
	}
	if sum.Vaccinations[0].Status != "upcoming" {
		t.Fatalf("expected upcoming status, got %s", sum.Vaccinations[0].Status)
	}

	// 5) Stock de alimento bajo el umbral
	st, body = doReq(t, ts.URL, "PUT", "/pets/"+petID+"/food-stock", staffID, map[string]any{
		"current_grams":        "1200",
		"daily_grams":          "400",
		"alert_threshold_days": 7,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 upsert stock, got %d body=%s", st, string(body))
	}
	var stock struct {
		DaysRemaining int  `json:"days_remaining"`
		Low           bool `json:"low"`
	}
	if err := json.Unmarshal(body, &stock); err != nil {
		t.Fatalf("unmarshal stock: %v", err)
	}
	if stock.DaysRemaining != 3 || !stock.Low {
		t.Fatalf("expected 3 days remaining and low=true, got %+v", stock)
	}

	st, body = doReq(t, ts.URL, "GET", "/food-stock/low", staffID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 low stock list, got %d body=%s", st, string(body))
	}
	var low []struct {
		PetID string `json:"pet_id"`
	}
	if err := json.Unmarshal(body, &low); err != nil {
		t.Fatalf("unmarshal low stock: %v", err)
	}
	if len(low) != 1 || low[0].PetID != petID {
		t.Fatalf("expected pet %s in low stock list, body=%s", petID, string(body))
	}

	// 6) El barrido manda un solo mensaje consolidado al tutor
	st, body = doReq(t, ts.URL, "POST", "/reminders/send", staffID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 send, got %d body=%s", st, string(body))
	}
	var res struct {
		Success bool `json:"success"`
		Sent    bool `json:"sent"`
		SentTo  int  `json:"sent_to"`
		Items   int  `json:"items"`
		Skipped int  `json:"skipped"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !res.Success || !res.Sent || res.SentTo != 1 {
		t.Fatalf("expected one tutor notified, got %+v", res)
	}
	if res.Items != 2 {
		t.Fatalf("expected vaccine + food alert in one message, got %d items", res.Items)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "+5491100000001" {
		t.Fatalf("expected one message to Ana, got %v", notifier.sent)
	}
	if !strings.Contains(notifier.texts[0], "Luna") || !strings.Contains(notifier.texts[0], "Alimento") {
		t.Fatalf("expected consolidated message with pet and food section:\n%s", notifier.texts[0])
	}

	// 7) Repetir el barrido no reenvía nada (dedup)
	st, body = doReq(t, ts.URL, "POST", "/reminders/send", staffID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 on repeat send, got %d body=%s", st, string(body))
	}
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("unmarshal repeat result: %v", err)
	}
	if res.Sent || res.Skipped != 2 {
		t.Fatalf("expected everything deduped on repeat, got %+v", res)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("repeat sweep sent again: %v", notifier.sent)
	}
}

func TestHTTP_RequiresAuth(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/reminders/upcoming"},
		{"POST", "/reminders/send"},
		{"POST", "/pets"},
		{"GET", "/food-stock/low"},
	}
	for _, p := range paths {
		st, _ := doReq(t, ts.URL, p.method, p.path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("%s %s without identity: expected 401, got %d", p.method, p.path, st)
		}
	}
}

func TestHTTP_Upcoming_RejectsNegativeDays(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/reminders/upcoming?days=-3", "staff-1", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative days, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
	}
}

// createJSON hace un POST y devuelve el campo id de la respuesta.
func createJSON(t *testing.T, baseURL, path, debugUserID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, debugUserID, payload)
	if st != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d body=%s", path, st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}
	if out.ID == "" {
		t.Fatalf("POST %s: empty id in response %s", path, string(body))
	}
	return out.ID
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
