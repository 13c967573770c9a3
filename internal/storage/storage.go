package storage

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/neubond/emgdash/internal/config"
)

// Storage is the read-only database collaborator. The dashboard never
// writes clinical data; sessions are produced by the exercise devices.
type Storage struct {
	DB    *sql.DB
	cache *queryCache
}

func NewStorage(cfg *config.Config) *Storage {
	// A .env is optional when the config file carries the connection string.
	_ = godotenv.Load()

	url := os.Getenv("TURSO_DATABASE_URL")
	if url == "" {
		url = cfg.DB.ConnectionString
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "TURSO_DATABASE_URL not set and no connection_string configured")
		os.Exit(1)
	}

	db, err := sql.Open("libsql", url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open db %s: %s", url, err)
		os.Exit(1)
	}

	return &Storage{
		DB: db,
		cache: newQueryCache(
			time.Duration(cfg.Cache.PatientsTTLSeconds)*time.Second,
			time.Duration(cfg.Cache.SessionsTTLSeconds)*time.Second,
		),
	}
}

// Invalidate drops all memoized query results.
func (s *Storage) Invalidate() {
	s.cache.purge()
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
