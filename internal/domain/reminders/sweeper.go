package reminders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/foodstock"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/schedule"
	"pet-care-reminders/internal/metrics"
	"pet-care-reminders/internal/platform/logger"
	"pet-care-reminders/internal/ports/notify"
)

// Sweeper es la política de despacho: toma el resumen del agregador,
// filtra lo ya notificado contra el ledger, arma un mensaje consolidado
// por tutor y lo entrega al colaborador de mensajería.
//
// El scheduler externo (cron) lo invoca con una cadencia fija; gracias
// al ledger el barrido es idempotente por día, así que disparos
// repetidos o superpuestos son seguros.
type Sweeper struct {
	agg      *Service
	food     *foodstock.Service
	pets     *pets.Service
	ledger   Ledger
	notifier notify.Notifier
	metrics  *metrics.SweepMetrics
	log      logger.Logger

	// un envío por segundo hacia el gateway (límite del proveedor)
	limiter *rate.Limiter

	// serializa sweeps en el proceso: un disparo manual no puede
	// correr en paralelo con el programado
	mu sync.Mutex

	now func() time.Time
}

func NewSweeper(
	agg *Service,
	food *foodstock.Service,
	petsSvc *pets.Service,
	ledger Ledger,
	notifier notify.Notifier,
	m *metrics.SweepMetrics,
	log logger.Logger,
) *Sweeper {
	if log == nil {
		log = logger.Nop()
	}
	if m == nil {
		m = metrics.NewSweepMetrics(nil)
	}
	return &Sweeper{
		agg:      agg,
		food:     food,
		pets:     petsSvc,
		ledger:   ledger,
		notifier: notifier,
		metrics:  m,
		log:      log,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		now:      time.Now,
	}
}

// Result es el resultado estructurado de un barrido. El Sweeper nunca
// propaga pánicos ni errores sueltos al scheduler: todo fallo queda
// capturado acá.
type Result struct {
	Success bool     `json:"success"`
	Sent    bool     `json:"sent"`
	Message string   `json:"message"`
	SentTo  int      `json:"sent_to"`      // tutores notificados
	Items   int      `json:"items"`        // ítems incluidos en envíos confirmados
	Skipped int      `json:"skipped"`      // ítems omitidos por dedup
	Errors  []string `json:"errors,omitempty"`
}

// stockAlert es la alerta de reposición de alimento que viaja junto a
// los recordatorios de salud del mismo tutor.
type stockAlert struct {
	PetID         string
	PetName       string
	TutorName     string
	TutorPhone    string
	DaysRemaining int
	RestockAt     time.Time
}

// tutorBatch agrupa todo lo que le toca a un tutor en un solo mensaje.
type tutorBatch struct {
	phone string
	name  string
	items []Item
	stock []stockAlert
}

// SendHealthReminders ejecuta un barrido completo para la ventana dada.
//
// Dedup: se consulta el ledger antes de enviar, y se marca recién
// después de que el notifier confirma. Un envío fallido no marca nada:
// esos ítems siguen elegibles en el próximo barrido.
func (sw *Sweeper) SendHealthReminders(ctx context.Context, daysAhead int) Result {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.metrics != nil {
		sw.metrics.SweepsTotal.Inc()
	}

	summary, err := sw.agg.Upcoming(ctx, daysAhead)
	if err != nil {
		return Result{Success: false, Message: "failed to aggregate reminders", Errors: []string{err.Error()}}
	}

	alerts, aerr := sw.collectStockAlerts(ctx)

	if summary.Total == 0 && len(alerts) == 0 {
		res := Result{Success: aerr == nil, Sent: false, Message: "no items due"}
		if aerr != nil {
			res.Errors = append(res.Errors, aerr.Error())
		}
		return res
	}

	res := Result{Success: true}
	if aerr != nil {
		res.Success = false
		res.Errors = append(res.Errors, aerr.Error())
	}

	batches := sw.buildBatches(ctx, summary, alerts, &res)

	if len(batches) == 0 {
		if res.Skipped > 0 && len(res.Errors) == 0 {
			res.Message = "all reminders already sent"
		} else if res.Message == "" {
			res.Message = "no deliverable reminders"
		}
		return res
	}

	for _, b := range batches {
		if err := sw.limiter.Wait(ctx); err != nil {
			res.Success = false
			res.Errors = append(res.Errors, fmt.Sprintf("sweep cancelled: %v", err))
			break
		}

		text := formatTutorMessage(b)
		msgID, err := sw.notifier.Send(ctx, b.phone, text)
		if err != nil {
			// Sin marca en el ledger: estos ítems reintentan en el
			// próximo barrido. Nunca reintentamos acá adentro.
			if sw.metrics != nil {
				sw.metrics.DispatchFailures.Inc()
			}
			sw.log.Error("reminder dispatch failed", map[string]any{
				"tutor_phone": b.phone,
				"error":       err.Error(),
			})
			res.Success = false
			res.Errors = append(res.Errors, fmt.Sprintf("send to %s: %v", b.phone, err))
			continue
		}

		sw.log.Info("reminder sent", map[string]any{
			"tutor_phone": b.phone,
			"message_id":  msgID,
			"items":       len(b.items) + len(b.stock),
		})

		sw.markBatch(ctx, b)
		res.SentTo++
		res.Items += len(b.items) + len(b.stock)

		if sw.metrics != nil {
			for _, it := range b.items {
				sw.metrics.RemindersSent.WithLabelValues(string(it.Category)).Inc()
			}
			for range b.stock {
				sw.metrics.RemindersSent.WithLabelValues("food").Inc()
			}
		}
	}

	res.Sent = res.SentTo > 0
	if res.Message == "" {
		res.Message = fmt.Sprintf("notified %d tutor(s), %d item(s), %d deduped", res.SentTo, res.Items, res.Skipped)
	}
	return res
}

// buildBatches filtra contra el ledger y agrupa por teléfono de tutor.
func (sw *Sweeper) buildBatches(ctx context.Context, summary Summary, alerts []stockAlert, res *Result) []tutorBatch {
	byPhone := make(map[string]*tutorBatch)

	add := func(phone, name string) *tutorBatch {
		b, ok := byPhone[phone]
		if !ok {
			b = &tutorBatch{phone: phone, name: name}
			byPhone[phone] = b
		}
		return b
	}

	for _, cat := range careitems.Categories {
		for _, it := range summary.ByCategory(cat) {
			if strings.TrimSpace(it.TutorPhone) == "" {
				sw.log.Warn("reminder skipped: tutor has no phone", map[string]any{
					"record_id": it.RecordID,
					"pet_id":    it.PetID,
				})
				continue
			}

			seen, err := sw.ledger.Seen(ctx, keyFor(it))
			if err != nil {
				// Ledger caído: no enviamos (podría duplicar) y el ítem
				// queda elegible para el próximo barrido.
				res.Success = false
				res.Errors = append(res.Errors, fmt.Sprintf("ledger check %s: %v", it.RecordID, err))
				continue
			}
			if seen {
				res.Skipped++
				if sw.metrics != nil {
					sw.metrics.RemindersDeduped.Inc()
				}
				continue
			}

			b := add(it.TutorPhone, it.TutorName)
			b.items = append(b.items, it)
		}
	}

	for _, al := range alerts {
		key := DedupKey{RecordID: "food:" + al.PetID, DueDay: schedule.Day(al.RestockAt)}

		seen, err := sw.ledger.Seen(ctx, key)
		if err != nil {
			res.Success = false
			res.Errors = append(res.Errors, fmt.Sprintf("ledger check food:%s: %v", al.PetID, err))
			continue
		}
		if seen {
			res.Skipped++
			if sw.metrics != nil {
				sw.metrics.RemindersDeduped.Inc()
			}
			continue
		}

		b := add(al.TutorPhone, al.TutorName)
		b.stock = append(b.stock, al)
	}

	out := make([]tutorBatch, 0, len(byPhone))
	for _, b := range byPhone {
		out = append(out, *b)
	}
	// orden estable por teléfono para que los tests y los logs sean reproducibles
	sort.Slice(out, func(i, j int) bool { return out[i].phone < out[j].phone })
	return out
}

// markBatch escribe las marcas de dedup de un envío confirmado. Un
// error al marcar se loguea pero no falla el barrido: el peor caso es
// un reenvío (at-least-once).
func (sw *Sweeper) markBatch(ctx context.Context, b tutorBatch) {
	for _, it := range b.items {
		if err := sw.ledger.Mark(ctx, keyFor(it)); err != nil {
			sw.log.Warn("ledger mark failed", map[string]any{
				"record_id": it.RecordID,
				"error":     err.Error(),
			})
		}
	}
	for _, al := range b.stock {
		key := DedupKey{RecordID: "food:" + al.PetID, DueDay: schedule.Day(al.RestockAt)}
		if err := sw.ledger.Mark(ctx, key); err != nil {
			sw.log.Warn("ledger mark failed", map[string]any{
				"record_id": key.RecordID,
				"error":     err.Error(),
			})
		}
	}
}

// collectStockAlerts resuelve las mascotas con stock bajo y su tutor.
// Si el módulo de stock no está configurado, no aporta alertas.
func (sw *Sweeper) collectStockAlerts(ctx context.Context) ([]stockAlert, error) {
	if sw.food == nil {
		return nil, nil
	}

	low, err := sw.food.ListLow(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	out := make([]stockAlert, 0, len(low))
	for _, p := range low {
		pet, err := sw.pets.GetByID(ctx, p.PetID)
		if err != nil {
			sw.log.Warn("stock alert skipped: pet not found", map[string]any{"pet_id": p.PetID})
			continue
		}
		if strings.TrimSpace(pet.TutorPhone) == "" {
			sw.log.Warn("stock alert skipped: tutor has no phone", map[string]any{"pet_id": p.PetID})
			continue
		}
		out = append(out, stockAlert{
			PetID:         p.PetID,
			PetName:       pet.Name,
			TutorName:     pet.TutorName,
			TutorPhone:    pet.TutorPhone,
			DaysRemaining: p.DaysRemaining,
			RestockAt:     p.RestockAt,
		})
	}
	return out, nil
}
