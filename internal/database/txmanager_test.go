package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/tableside/tableside/internal/errors"
)

// TestMain verifies no goroutines leak from transaction handling.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTxManager_WithTx(t *testing.T) {
	t.Run("CommitsOnSuccess", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		manager := NewTxManager(db)
		err = manager.WithTx(context.Background(), func(ctx context.Context) error {
			querier := GetTx(ctx, db)
			_, execErr := querier.ExecContext(ctx, "UPDATE users SET role = 'admin'")
			return execErr
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		manager := NewTxManager(db)
		wantErr := apperrors.New("boom")
		err = manager.WithTx(context.Background(), func(ctx context.Context) error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTx(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("NoTransactionReturnsDB", func(t *testing.T) {
		querier := GetTx(context.Background(), db)
		assert.Equal(t, Querier(db), querier)
	})
}
