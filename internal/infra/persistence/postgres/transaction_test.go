package postgres

import (
	"context"
	"testing"

	"identity/internal/domain/repository"
	"identity/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Execute_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		return f.UserRepo().UpdateStatus(context.Background(), uuid.New(), false)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_Execute_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
