package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

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
	"pet-care-reminders/internal/platform/logger"
	"pet-care-reminders/internal/ports/notify"
)

// Corrida única del barrido de recordatorios. Pensado para cron:
//
//	DB_DSN=... WHATSAPP_BASE_URL=... sweep -days 7
func main() {
	days := flag.Int("days", defaultDays(), "ventana de anticipación en días")
	timeout := flag.Duration("timeout", 2*time.Minute, "tiempo máximo de la corrida")
	flag.Parse()

	lg := logger.NewFromEnv()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is required: a sweep over an empty in-memory store is a no-op")
	}
	db, err := pg.Open(dsn)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	petRepo := pg.NewPetsRepo(db)
	itemRepo := pg.NewCareItemsRepo(db)
	recordRepo := pg.NewRecordsRepo(db)
	stockRepo := pg.NewFoodStockRepo(db)

	petsSvc := pets.NewService(petRepo)
	itemsSvc := careitems.NewService(itemRepo)
	recordsSvc := records.NewService(recordRepo, itemsSvc)
	stockSvc := foodstock.NewService(stockRepo)

	agg := reminders.NewService(recordsSvc, itemsSvc, petsSvc, lg)
	sweeper := reminders.NewSweeper(agg, stockSvc, petsSvc, buildLedger(db), buildNotifier(), nil, lg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res := sweeper.SendHealthReminders(ctx, *days)
	lg.Info("sweep finished", map[string]any{
		"success": res.Success,
		"sent":    res.Sent,
		"sent_to": res.SentTo,
		"items":   res.Items,
		"skipped": res.Skipped,
		"message": res.Message,
	})
	for _, e := range res.Errors {
		lg.Error("sweep error", map[string]any{"error": e})
	}
	if !res.Success {
		os.Exit(1)
	}
}

// defaultDays: REMINDER_DAYS_AHEAD pisa el default si es un entero válido.
func defaultDays() int {
	if v := os.Getenv("REMINDER_DAYS_AHEAD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return 7
}

func buildLedger(db *sql.DB) reminders.Ledger {
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

func buildNotifier() notify.Notifier {
	if base := os.Getenv("WHATSAPP_BASE_URL"); base != "" {
		c, err := whatsapp.NewClient(whatsapp.Config{
			BaseURL: base,
			Token:   os.Getenv("WHATSAPP_TOKEN"),
		})
		if err != nil {
			log.Fatalf("whatsapp client: %v", err)
		}
		return c
	}
	if url := os.Getenv("AMQP_URL"); url != "" {
		queue := os.Getenv("AMQP_QUEUE")
		if queue == "" {
			queue = "outbound-reminders"
		}
		p, err := rabbit.NewPublisher(url, queue)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		return p
	}
	log.Fatal("no notifier configured: set WHATSAPP_BASE_URL or AMQP_URL")
	return nil
}
