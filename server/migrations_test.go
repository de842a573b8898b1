package server

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsUpToDate(t *testing.T) {
	mock, _ := newMock(t)
	head := len(GetSQLMigrations()) - 1
	mock.ExpectQuery("SELECT migration_id FROM migration_head").
		WillReturnRows(pgxmock.NewRows([]string{"migration_id"}).AddRow(head))

	require.NoError(t, RunMigrations(context.Background(), testLogger(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsAppliesPending(t *testing.T) {
	mock, _ := newMock(t)
	head := len(GetSQLMigrations()) - 2
	mock.ExpectQuery("SELECT migration_id FROM migration_head").
		WillReturnRows(pgxmock.NewRows([]string{"migration_id"}).AddRow(head))
	mock.ExpectExec("CREATE TABLE contact_messages").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("UPDATE migration_head").
		WithArgs(head + 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, RunMigrations(context.Background(), testLogger(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsFailure(t *testing.T) {
	mock, _ := newMock(t)
	head := len(GetSQLMigrations()) - 2
	mock.ExpectQuery("SELECT migration_id FROM migration_head").
		WillReturnRows(pgxmock.NewRows([]string{"migration_id"}).AddRow(head))
	mock.ExpectExec("CREATE TABLE contact_messages").WillReturnError(errors.New("boom"))

	err := RunMigrations(context.Background(), testLogger(), mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed at migration")
}
