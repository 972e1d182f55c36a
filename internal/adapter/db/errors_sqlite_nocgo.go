//go:build !cgo

package db

import (
	// Registers the stub driver so ConnectDB reports a clear error without cgo.
	_ "github.com/mattn/go-sqlite3"
)

func isSQLiteForeignKeyViolation(error) bool { return false }

func isSQLiteUniqueViolation(error) bool { return false }
