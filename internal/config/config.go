package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strings" // strings normalises enum-like values
	"time"    // time parses durations and locations

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMySQL  = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env               string         // application environment (e.g. "dev", "prod")
	Port              string         // HTTP port to listen on
	APIBaseURL        string         // origin of the reservation REST API
	APITimeout        time.Duration  // per-call timeout towards the API
	SessionSecret     string         // secret the cookie signing key is derived from
	SessionStore      string         // memory | redis | mysql
	SessionTTL        time.Duration  // lifetime of a session
	SecureCookie      bool           // mark the session cookie Secure
	AdminRequireLogin bool           // gate /admin behind a successful admin login
	Location          *time.Location // zone used for "today" and the default window
	SiteConfigPath    string         // optional YAML site file
	DBUser            string         // database username (mysql store only)
	DBPass            string         // database password (optional)
	DBHost            string         // database host address
	DBPort            string         // database port number
	DBName            string         // database name
}

// Load reads configuration values from a local .env file (if any) and the
// environment.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg := Config{
		Env:               envStr("APP_ENV", "dev"),
		Port:              envStr("APP_PORT", "8080"),
		APIBaseURL:        envStr("API_BASE_URL", "http://127.0.0.1:5000"),
		APITimeout:        envDur("API_TIMEOUT", 10*time.Second),
		SessionSecret:     must("SESSION_SECRET"),
		SessionStore:      strings.ToLower(envStr("SESSION_STORE", StoreMemory)),
		SessionTTL:        envDur("SESSION_TTL", 24*time.Hour),
		SecureCookie:      envBool("SESSION_SECURE_COOKIE", false),
		AdminRequireLogin: envBool("ADMIN_REQUIRE_LOGIN", false),
		Location:          mustLocation(envStr("TIMEZONE", "Local")),
		SiteConfigPath:    os.Getenv("SITE_CONFIG"),
	}

	switch cfg.SessionStore {
	case StoreMemory, StoreRedis:
	case StoreMySQL:
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS")
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = envStr("DB_PORT", "3306")
		cfg.DBName = must("DB_NAME")
	default:
		log.Fatalf("invalid SESSION_STORE %q (want memory, redis or mysql)", cfg.SessionStore)
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid TIMEZONE %q: %v", name, err)
	}
	return loc
}
