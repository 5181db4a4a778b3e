package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Config struct {
	Addr            string
	DBDriver        string
	DatabaseURL     string
	JWT             JWTConfig
	BcryptCost      int
	StrictOwnership bool
	DefaultLocale   string
	AdminEmails     []string

	DB *sql.DB
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

var AppConfig *Config

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the environment, after merging an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		log.Printf("Invalid JWT_TTL, using 24h: %v", err)
		ttl = 24 * time.Hour
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "12"))
	if err != nil {
		log.Printf("Invalid BCRYPT_COST, using 12: %v", err)
		cost = 12
	}

	var admins []string
	for _, e := range strings.Split(getEnv("ADMIN_EMAILS", ""), ",") {
		if e = strings.TrimSpace(strings.ToLower(e)); e != "" {
			admins = append(admins, e)
		}
	}

	return &Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL: getEnv("DATABASE_URL", "file:campus.db?_pragma=foreign_keys(1)&_pragma=journal_mode(wal)"),
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "campus-lms-secret-key"), // Default for development
			Issuer: getEnv("JWT_ISSUER", "campus-lms"),
			TTL:    ttl,
		},
		BcryptCost:      cost,
		StrictOwnership: strings.EqualFold(getEnv("STRICT_OWNERSHIP", "false"), "true"),
		DefaultLocale:   getEnv("DEFAULT_LOCALE", "id"),
		AdminEmails:     admins,
	}
}

// OpenDB opens and pings a PostgreSQL or SQLite database.
func OpenDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite" {
		// One writer at a time; in-memory databases live per connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// InitDB connects using cfg and publishes cfg as AppConfig.
func InitDB(cfg *Config) {
	log.Printf("Connecting to %s database...", cfg.DBDriver)
	db, err := OpenDB(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}
	cfg.DB = db
	AppConfig = cfg
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
