package config

import "os"

// DefaultListTitle seeds the settings singleton when no title was ever saved.
const DefaultListTitle = "Was brauchst du heute?"

// Server captures process-level configuration.
type Server struct {
	Addr             string
	DatabaseURL      string
	RedisURL         string
	CORSOrigin       string
	DefaultListTitle string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// DATABASE_URL and REDIS_URL are optional; without them the process falls back
// to in-memory stores, which is enough for local development.
func FromEnv() Server {
	addr := os.Getenv("LIST_ADDR")
	if addr == "" {
		addr = ":4000"
	}

	title := os.Getenv("DEFAULT_LIST_TITLE")
	if title == "" {
		title = DefaultListTitle
	}

	return Server{
		Addr:             addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		CORSOrigin:       os.Getenv("CORS_ORIGIN"),
		DefaultListTitle: title,
	}
}
