package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"vrisa/internal/config"
	"vrisa/internal/database"
	"vrisa/internal/session"
)

// Removes expired and revoked sessions. Meant to run from cron; the gateway
// also drops expired rows lazily on read, so this only bounds table growth.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.RedisURL != "" {
		log.Println("sessions live in redis with native TTLs, nothing to purge")
		return
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cipher, err := session.NewCipher(cfg.SessionSecret)
	if err != nil {
		log.Fatal(err)
	}
	store := session.NewGormStore(db, cipher)
	if err := store.Migrate(); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	purged, err := store.PurgeExpired(context.Background())
	if err != nil {
		log.Fatalf("session cleanup failed: %v", err)
	}
	log.Printf("session cleanup completed: sessions=%d", purged)
}
