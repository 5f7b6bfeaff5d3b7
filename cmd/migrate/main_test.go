package main

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMigration = `-- +migrate Up
CREATE TABLE tables (id SERIAL PRIMARY KEY);

-- +migrate Down
DROP TABLE tables;
`

func writeMigration(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleMigration), 0o644))
	return dir
}

func TestExtractSection(t *testing.T) {
	up := extractSection(sampleMigration, "Up")
	assert.Contains(t, up, "CREATE TABLE tables")
	assert.NotContains(t, up, "DROP TABLE")

	down := extractSection(sampleMigration, "Down")
	assert.Contains(t, down, "DROP TABLE tables")
	assert.NotContains(t, down, "CREATE TABLE")
}

func TestRunUpAppliesPendingMigration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := writeMigration(t, "001_init.sql")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE tables")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
		WithArgs("001_init.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, run(db, "up", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunUpSkipsAppliedMigration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := writeMigration(t, "001_init.sql")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, run(db, "up", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDownRollsBackLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dir := writeMigration(t, "001_init.sql")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("001_init.sql"))
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE tables")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schema_migrations")).
		WithArgs("001_init.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, run(db, "down", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRejectsUnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = run(db, "sideways", t.TempDir())
	assert.Error(t, err)
}
