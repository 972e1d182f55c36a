package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	AppPort    string `env:"APP_PORT" env-default:"8080"`
	AppName    string `env:"APP_NAME" env-default:"tasktree"`
	AppVersion string `env:"APP_VERSION" env-default:"dev"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`

	DbDriver      string `env:"DB_DRIVER" env-default:"mysql"`
	DbHost        string `env:"DB_HOST" env-default:"db"`
	DbPort        string `env:"DB_PORT" env-default:"3306"`
	DbUser        string `env:"DB_USER" env-default:"tasktree"`
	DbPassword    string `env:"DB_PASSWORD" env-default:"tasktree"`
	DbName        string `env:"DB_NAME" env-default:"tasktree"`
	DbParams      string `env:"DB_PARAMS"`
	DbDSN         string `env:"DB_DSN"`
	DbAutoMigrate bool   `env:"DB_AUTO_MIGRATE" env-default:"true"`

	JwtSecret string        `env:"JWT_SECRET" env-required:"true"`
	JwtTTL    time.Duration `env:"JWT_TTL" env-default:"24h"`

	TranslationFolder string        `env:"TRANSLATION_FOLDER" env-default:"pkg/translator/translation"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	TrustedProxiesRaw string `env:"TRUSTED_PROXIES"`
	TrustedProxies    []string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	var conf Config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if conf.JwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	conf.TrustedProxies = parseTrustedProxies(conf.TrustedProxiesRaw)

	switch conf.DbDriver {
	case DriverMySQL, DriverPostgres:
	case DriverSQLite:
		if conf.DbDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for driver %q", conf.DbDriver)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", conf.DbDriver)
	}

	return &conf, nil
}

// DSN returns DB_DSN when set, otherwise a DSN assembled for DbDriver.
func (c *Config) DSN() string {
	if c.DbDSN != "" {
		return c.DbDSN
	}

	params := c.DbParams
	switch c.DbDriver {
	case DriverPostgres:
		if params == "" {
			params = "sslmode=disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DbUser, c.DbPassword),
			Host:     net.JoinHostPort(c.DbHost, c.DbPort),
			Path:     "/" + c.DbName,
			RawQuery: params,
		}
		return u.String()
	default:
		if params == "" {
			params = "parseTime=true"
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?%s",
			c.DbUser,
			c.DbPassword,
			c.DbHost,
			c.DbPort,
			c.DbName,
			params,
		)
	}
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
