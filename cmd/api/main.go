package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pet-care-reminders/internal/adapters/auth/odin"
	"pet-care-reminders/internal/ports/auth"
	"pet-care-reminders/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var verifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)
	if base := os.Getenv("ODIN_BASE_URL"); base != "" {
		client, err := odin.NewClient(odin.Config{
			BaseURL: base,
			APIKey:  os.Getenv("ODIN_API_KEY"),
		})
		if err != nil {
			log.Fatalf("odin client: %v", err)
		}
		verifier = odin.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{AuthVerifier: verifier})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
