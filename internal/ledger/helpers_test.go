package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fin_api/internal/domain"
	"fin_api/internal/events"
	"fin_api/internal/ledger"
	"fin_api/internal/store/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.StatementCreated
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.StatementCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.StatementCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.StatementCreated(nil), p.events...)
}

var _ events.Publisher = (*recordingPublisher)(nil)

type fixture struct {
	users      *memory.UserStore
	statements *memory.StatementStore
	publisher  *recordingPublisher
	engine     *ledger.Engine
	query      *ledger.Query
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUserStore()
	statements := memory.NewStatementStore(users)
	publisher := &recordingPublisher{}
	return &fixture{
		users:      users,
		statements: statements,
		publisher:  publisher,
		engine:     ledger.NewEngine(users, statements, publisher),
		query:      ledger.NewQuery(users, statements),
	}
}

func (f *fixture) createUser(t *testing.T, email string) string {
	t.Helper()
	user := &domain.User{Name: "Test name", Email: email, Password: "hash"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func (f *fixture) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	b, err := f.query.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return b.Balance
}

func (f *fixture) historyLen(t *testing.T, userID string) int {
	t.Helper()
	history, err := f.statements.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	return len(history)
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.NewFromInt(want).Equal(got), "want=%d got=%s", want, got)
}

var errBroker = errors.New("broker unavailable")
