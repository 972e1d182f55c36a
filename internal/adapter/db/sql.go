package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"tasktree/internal/config"
)

// insertReturningID runs an INSERT and returns the generated id. PostgreSQL
// has no LastInsertId, so the statement gets a RETURNING clause there.
func insertReturningID(ctx context.Context, ext sqlx.ExtContext, query string, args ...any) (uint64, error) {
	if ext.DriverName() == config.DriverPostgres {
		var id uint64
		if err := ext.QueryRowxContext(ctx, ext.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := ext.ExecContext(ctx, ext.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullableID(value *uint64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
