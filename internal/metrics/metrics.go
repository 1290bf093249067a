// Package metrics expone los contadores Prometheus del motor de
// recordatorios. Se registran en un Registry inyectado para que los
// tests no compartan estado global.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type SweepMetrics struct {
	RemindersSent    *prometheus.CounterVec
	RemindersDeduped prometheus.Counter
	DispatchFailures prometheus.Counter
	SweepsTotal      prometheus.Counter
}

func NewSweepMetrics(reg prometheus.Registerer) *SweepMetrics {
	m := &SweepMetrics{
		RemindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "health_reminders_sent_total",
			Help: "Recordatorios enviados, por categoría.",
		}, []string{"category"}),
		RemindersDeduped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "health_reminders_deduped_total",
			Help: "Recordatorios omitidos por ya haber sido notificados.",
		}),
		DispatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "health_reminder_dispatch_failures_total",
			Help: "Envíos al colaborador de mensajería que fallaron.",
		}),
		SweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "health_reminder_sweeps_total",
			Help: "Barridos de recordatorios ejecutados.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.RemindersSent, m.RemindersDeduped, m.DispatchFailures, m.SweepsTotal)
	}
	return m
}
