package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment. A .env file is
// honored when present but never required.
type Config struct {
	Port string

	// DatabaseURL selects Postgres when set; otherwise the store is a
	// single SQLite file under DataDir.
	DatabaseURL string
	SQLitePath  string

	DataDir    string
	UploadsDir string
}

func Load() Config {
	_ = godotenv.Load()

	dataDir := getenv("DATA_DIR", "data")

	return Config{
		Port:        getenv("PORT", "3001"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("DB_PATH", filepath.Join(dataDir, "inventory.db")),
		DataDir:     dataDir,
		UploadsDir:  getenv("UPLOADS_DIR", filepath.Join(dataDir, "uploads")),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
