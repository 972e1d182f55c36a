package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	conf, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", conf.AppPort)
	assert.Equal(t, DriverMySQL, conf.DbDriver)
	assert.True(t, conf.DbAutoMigrate)
	assert.Equal(t, 24*time.Hour, conf.JwtTTL)
	assert.Equal(t, 10*time.Second, conf.ShutdownTimeout)
	assert.Nil(t, conf.TrustedProxies)
}

func TestLoadConfig_RequiresJwtSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()

	require.Error(t, err)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()

	require.ErrorContains(t, err, "oracle")
}

func TestLoadConfig_SQLiteNeedsDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_DSN", "")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("DB_DSN", "/tmp/tasktree.db")
	conf, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tasktree.db", conf.DSN())
}

func TestConfig_DSN(t *testing.T) {
	conf := Config{
		DbDriver:   DriverMySQL,
		DbHost:     "db",
		DbPort:     "3306",
		DbUser:     "app",
		DbPassword: "pw",
		DbName:     "tasks",
	}
	assert.Equal(t, "app:pw@tcp(db:3306)/tasks?parseTime=true", conf.DSN())

	conf.DbDriver = DriverPostgres
	conf.DbPort = "5432"
	assert.Equal(t, "postgres://app:pw@db:5432/tasks?sslmode=disable", conf.DSN())
}

func TestParseTrustedProxies(t *testing.T) {
	assert.Nil(t, parseTrustedProxies(""))
	assert.Nil(t, parseTrustedProxies(" , "))
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, parseTrustedProxies(" 10.0.0.1 ,, 192.168.0.0/16"))
}
