package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process configuration, assembled once in main and passed to
// component constructors. No component reads the environment on its own.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	SQLite  SQLiteConfig
	Redis   RedisConfig
	Session SessionConfig
	Auth    AuthConfig
	Audit   AuditConfig
}

type SQLiteConfig struct {
	Path    string        `env:"SQLITE_PATH,    default=database/database.db"`
	Timeout time.Duration `env:"SQLITE_TIMEOUT, default=5s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	// TTL is the session idle timeout enforced by the container store.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
}

type AuthConfig struct {
	// BcryptCost tunes the password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// Initial passwords for the seeded admin/employee accounts. Hashed
	// before storage; only applied when the account does not exist yet.
	SeedAdminPassword    string `env:"SEED_ADMIN_PASSWORD,    default=password"`
	SeedEmployeePassword string `env:"SEED_EMPLOYEE_PASSWORD, default=password"`

	// MaxLoginFailures locks a username out after this many failed attempts
	// within ThrottleWindow. Zero disables the lockout.
	MaxLoginFailures int           `env:"MAX_LOGIN_FAILURES, default=5"`
	ThrottleWindow   time.Duration `env:"THROTTLE_WINDOW,    default=15m"`
}

type AuditConfig struct {
	// Workers is the number of audit writer goroutines.
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
