package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	statements := splitStatements("CREATE TABLE a (id INT);\n\n  CREATE INDEX i ON a (id) ;\n")

	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a (id)"}, statements)
	assert.Empty(t, splitStatements(" ;\n; "))
}

func TestEmbeddedMigrationsCoverEveryDriver(t *testing.T) {
	for _, driver := range []string{"mysql", "pgx", "sqlite3"} {
		entries, err := migrations.ReadDir("migrations/" + driver)
		assert.NoError(t, err, driver)
		assert.Len(t, entries, 2, driver)
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "/tmp/app.db?_foreign_keys=1", sqliteDSN("/tmp/app.db"))
	assert.Equal(t, "file:app.db?cache=shared&_foreign_keys=1", sqliteDSN("file:app.db?cache=shared"))
	assert.Equal(t, "/tmp/app.db?_fk=1", sqliteDSN("/tmp/app.db?_fk=1"))
}
