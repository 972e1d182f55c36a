package db

import (
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"tasktree/internal/config"
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	dsn := conf.DSN()
	if conf.DbDriver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Connect(conf.DbDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", conf.DbDriver, err)
	}

	if conf.DbDriver == config.DriverSQLite {
		// A single connection serialises writers and keeps the foreign key pragma.
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") || strings.Contains(path, "_fk=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=1"
	}
	return path + "?_foreign_keys=1"
}
