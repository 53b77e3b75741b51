package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"

	TokenModeStatic = "static"
	TokenModeJWT    = "jwt"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Used to build a Postgres DSN when DatabaseURL is empty
	DBHost     string
	DBName     string
	DBUser     string
	DBPassword string
	DBPort     int
	DBSSLMode  string

	StaticDir string

	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword
	TokenMode         string
	TokenSecret       string
	TokenTTLHours     int
	AdminGuard        bool
	LenientReject     bool

	LogFormat string
	LogLevel  string
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads flags, falling back to environment variables and defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("mister-vote", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres DSN or sqlite file)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&cfg.StaticDir, "static", "", "Directory holding the front-end assets")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin shared password (prefer env)")
	fs.StringVar(&cfg.TokenMode, "token-mode", "", "Admin token mode (static or jwt)")
	fs.BoolVar(&cfg.AdminGuard, "admin-guard", false, "Require an admin token on admin transaction routes")
	fs.BoolVar(&cfg.LenientReject, "lenient-reject", false, "Allow rejecting transactions that already left pending")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", 5000); err != nil {
			return Config{}, err
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envString("DATABASE_TYPE", DatabasePostgres)
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType == DatabaseSQLite {
		return Config{}, errors.New("sqlite requires a database file (use -d or DATABASE_URL env)")
	}

	cfg.DBHost = envString("DB_HOST", "localhost")
	cfg.DBName = envString("DB_NAME", "election_mister")
	cfg.DBUser = envString("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBSSLMode = envString("DB_SSLMODE", "disable")
	if cfg.DBPort, err = envInt("DB_PORT", 5432); err != nil {
		return Config{}, err
	}

	if cfg.StaticDir == "" {
		cfg.StaticDir = envString("STATIC_DIR", "static")
	}

	if cfg.AdminPassword == "" {
		cfg.AdminPassword = envString("ADMIN_PASSWORD", "2025")
	}
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	if cfg.TokenMode == "" {
		cfg.TokenMode = envString("ADMIN_TOKEN_MODE", TokenModeStatic)
	}
	cfg.TokenSecret = os.Getenv("ADMIN_TOKEN_SECRET")
	if cfg.TokenTTLHours, err = envInt("ADMIN_TOKEN_TTL_HOURS", 24); err != nil {
		return Config{}, err
	}
	switch cfg.TokenMode {
	case TokenModeStatic:
	case TokenModeJWT:
		if cfg.TokenSecret == "" {
			return Config{}, errors.New("ADMIN_TOKEN_SECRET required for jwt token mode")
		}
	default:
		return Config{}, fmt.Errorf("unsupported token mode %q", cfg.TokenMode)
	}

	if !cfg.AdminGuard {
		if cfg.AdminGuard, err = envBool("ADMIN_GUARD"); err != nil {
			return Config{}, err
		}
	}
	if !cfg.LenientReject {
		if cfg.LenientReject, err = envBool("LENIENT_REJECT"); err != nil {
			return Config{}, err
		}
	}

	cfg.LogFormat = envString("LOG_FORMAT", "text")
	cfg.LogLevel = envString("LOG_LEVEL", "info")

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", key)
	}
	return b, nil
}
