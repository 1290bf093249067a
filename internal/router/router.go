package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"pet-care-reminders/internal/adapters/messaging/rabbit"
	"pet-care-reminders/internal/adapters/messaging/whatsapp"
	mem "pet-care-reminders/internal/adapters/storage/memory"
	pg "pet-care-reminders/internal/adapters/storage/postgres"
	rds "pet-care-reminders/internal/adapters/storage/redis"
	"pet-care-reminders/internal/domain/careitems"
	"pet-care-reminders/internal/domain/foodstock"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/domain/records"
	"pet-care-reminders/internal/domain/reminders"
	"pet-care-reminders/internal/metrics"
	"pet-care-reminders/internal/middleware"
	"pet-care-reminders/internal/platform/logger"
	"pet-care-reminders/internal/ports/auth"
	"pet-care-reminders/internal/ports/notify"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: colaborador de mensajería. Si es nil se resuelve por
	// env (WHATSAPP_BASE_URL, AMQP_URL) o cae en el notifier de dev
	// que solo loguea.
	Notifier notify.Notifier

	// Opcional: ledger de dedup. Si es nil se resuelve por env
	// (REDIS_ADDR), Postgres si hay DB, o mapa TTL en memoria.
	Ledger reminders.Ledger

	// Opcional: registry de Prometheus. nil => uno propio.
	Registry *prometheus.Registry

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	var (
		petRepo    pets.Repository
		itemRepo   careitems.Repository
		recordRepo records.Repository
		stockRepo  foodstock.Repository
	)

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		itemRepo = pg.NewCareItemsRepo(db)
		recordRepo = pg.NewRecordsRepo(db)
		stockRepo = pg.NewFoodStockRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		itemRepo = mem.NewCareItemRepo()
		recordRepo = mem.NewRecordRepo()
		stockRepo = mem.NewFoodStockRepo()
	}

	ledger := opts.Ledger
	if ledger == nil {
		ledger = resolveLedger(db)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = resolveNotifier(log)
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	sweepMetrics := metrics.NewSweepMetrics(reg)

	r.Method("GET", "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	itemsSvc := careitems.NewService(itemRepo)
	recordsSvc := records.NewService(recordRepo, itemsSvc)
	stockSvc := foodstock.NewService(stockRepo)

	aggSvc := reminders.NewService(recordsSvc, itemsSvc, petsSvc, log)
	sweeper := reminders.NewSweeper(aggSvc, stockSvc, petsSvc, ledger, notifier, sweepMetrics, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	careitems.RegisterRoutes(r, itemsSvc)
	records.RegisterRoutes(r, recordsSvc, petsSvc)
	foodstock.RegisterRoutes(r, stockSvc, petsSvc)
	reminders.RegisterRoutes(r, aggSvc, sweeper)

	return r
}

func resolveLedger(db *sql.DB) reminders.Ledger {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		return rds.NewDedupRepo(client, 0)
	}
	if db != nil {
		return pg.NewDedupRepo(db)
	}
	return mem.NewDedupRepo(0)
}

func resolveNotifier(log logger.Logger) notify.Notifier {
	if base := os.Getenv("WHATSAPP_BASE_URL"); base != "" {
		c, err := whatsapp.NewClient(whatsapp.Config{
			BaseURL: base,
			Token:   os.Getenv("WHATSAPP_TOKEN"),
		})
		if err == nil {
			return c
		}
		log.Warn("whatsapp client misconfigured", map[string]any{"error": err.Error()})
	}

	if url := os.Getenv("AMQP_URL"); url != "" {
		queue := os.Getenv("AMQP_QUEUE")
		if queue == "" {
			queue = "outbound-reminders"
		}
		p, err := rabbit.NewPublisher(url, queue)
		if err == nil {
			return p
		}
		log.Warn("rabbitmq unavailable", map[string]any{"error": err.Error()})
	}

	// modo dev: no hay mensajería configurada, solo logueamos
	return devNotifier{log: log}
}

type devNotifier struct {
	log logger.Logger
}

func (n devNotifier) Send(ctx context.Context, recipient, text string) (string, error) {
	n.log.Info("dev notifier: message not delivered", map[string]any{
		"recipient": recipient,
		"chars":     len(text),
	})
	return "dev-" + uuid.NewString(), nil
}
