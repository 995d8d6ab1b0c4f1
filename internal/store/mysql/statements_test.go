package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fin_api/internal/domain"
	"fin_api/internal/store"
)

const (
	lockUserQuery      = "SELECT `id` FROM `users` WHERE id = \\? .*FOR UPDATE"
	countOwnerQuery    = "SELECT count\\(\\*\\) FROM `users` WHERE id = \\?"
	listStatementQuery = "SELECT \\* FROM `statements` WHERE user_id = \\? ORDER BY created_at asc,\\s*id asc"
	findStatementQuery = "SELECT \\* FROM `statements` WHERE id = \\?"
	insertStatement    = "INSERT INTO `statements`"
)

var statementColumns = []string{"id", "user_id", "type", "amount", "description", "created_at"}

func TestStatementStore_WithUserLockCommits(t *testing.T) {
	db, mock := newMockDB(t)
	statements := NewStatementStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQuery).
		WithArgs("user-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
	mock.ExpectQuery(listStatementQuery).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(statementColumns).
			AddRow("s-1", "user-1", "deposit", "120.00", "", time.Now()))
	mock.ExpectQuery(countOwnerQuery).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(insertStatement).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	withdraw := &domain.Statement{
		UserID: "user-1",
		Type:   domain.OperationWithdraw,
		Amount: decimal.NewFromInt(20),
	}
	err := statements.WithUserLock(context.Background(), "user-1", func(tx store.StatementStore) error {
		history, err := tx.ListByUser(context.Background(), "user-1")
		if err != nil {
			return err
		}
		require.Len(t, history, 1)
		assert.True(t, decimal.NewFromInt(120).Equal(history[0].Amount))
		return tx.Append(context.Background(), withdraw)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, withdraw.ID)
	assert.False(t, withdraw.CreatedAt.IsZero())
}

func TestStatementStore_WithUserLockRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	statements := NewStatementStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQuery).
		WithArgs("user-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
	mock.ExpectRollback()

	err := statements.WithUserLock(context.Background(), "user-1", func(store.StatementStore) error {
		return domain.ErrInsufficientFunds
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestStatementStore_WithUserLockUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	statements := NewStatementStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQuery).
		WithArgs("missing", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	called := false
	err := statements.WithUserLock(context.Background(), "missing", func(store.StatementStore) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.False(t, called)
}

func TestStatementStore_AppendUnknownOwner(t *testing.T) {
	db, mock := newMockDB(t)
	statements := NewStatementStore(db)

	mock.ExpectQuery(countOwnerQuery).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := statements.Append(context.Background(), &domain.Statement{
		UserID: "missing",
		Type:   domain.OperationDeposit,
		Amount: decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStatementStore_ListByUserEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	statements := NewStatementStore(db)

	mock.ExpectQuery(listStatementQuery).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(statementColumns))

	history, err := statements.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestStatementStore_FindByID(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findStatementQuery).
			WithArgs("s-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(statementColumns).
				AddRow("s-1", "user-1", "deposit", "12.50", "salary", createdAt))

		got, err := NewStatementStore(db).FindByID(context.Background(), "user-1", "s-1")
		require.NoError(t, err)
		assert.Equal(t, domain.OperationDeposit, got.Type)
		assert.True(t, decimal.RequireFromString("12.50").Equal(got.Amount))
		assert.Equal(t, "salary", got.Description)
	})

	t.Run("owned by another user", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findStatementQuery).
			WithArgs("s-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(statementColumns).
				AddRow("s-1", "user-1", "deposit", "12.50", "", createdAt))

		got, err := NewStatementStore(db).FindByID(context.Background(), "user-2", "s-1")
		require.ErrorIs(t, err, domain.ErrStatementNotFound)
		assert.Nil(t, got)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findStatementQuery).
			WithArgs("s-404", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(statementColumns))

		_, err := NewStatementStore(db).FindByID(context.Background(), "user-1", "s-404")
		require.ErrorIs(t, err, domain.ErrStatementNotFound)
	})
}
