package tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "tasktree/internal/adapter/db"
	"tasktree/internal/config"
)

// IntegrationSuiteBase runs against a throwaway SQLite file, or against MySQL
// when TEST_DB_DRIVER=mysql.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	if envOrDefault("TEST_DB_DRIVER", config.DriverSQLite) == config.DriverMySQL {
		s.connectMySQL()
	}
}

func (s *IntegrationSuiteBase) connectMySQL() {
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("DB_NAME", "tasktree")+"_test")
	params := envOrDefault("DB_PARAMS", "parseTime=true")

	adminDB, err := sqlx.Connect(config.DriverMySQL, mysqlDSN(rootUser, rootPassword, host, port, "", params))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	db, err := dbadapter.ConnectDB(&config.Config{
		DbDriver: config.DriverMySQL,
		DbDSN:    mysqlDSN(rootUser, rootPassword, host, port, database, params),
	})
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.adminDB == nil {
		return
	}
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}
	s.Require().NoError(s.adminDB.Close())
}

// ResetDatabase gives every test an empty, migrated schema.
func (s *IntegrationSuiteBase) ResetDatabase() {
	if s.adminDB != nil {
		_, err := s.DB.Exec(`DROP TABLE IF EXISTS tasks`)
		s.Require().NoError(err)
		_, err = s.DB.Exec(`DROP TABLE IF EXISTS users`)
		s.Require().NoError(err)
	} else {
		db, err := dbadapter.ConnectDB(&config.Config{
			DbDriver: config.DriverSQLite,
			DbDSN:    filepath.Join(s.T().TempDir(), "tasktree_test.db"),
		})
		if err != nil {
			s.T().Skipf("skipping integration suite: sqlite unavailable: %v", err)
		}
		s.T().Cleanup(func() { _ = db.Close() })
		s.DB = db
	}

	s.Require().NoError(dbadapter.Migrate(context.Background(), s.DB))
}

func mysqlDSN(user, password, host, port, database, params string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
