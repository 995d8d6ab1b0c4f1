package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fin_api/internal/domain"
)

func TestNewMessage(t *testing.T) {
	statement := &domain.Statement{
		ID:          "statement-1",
		UserID:      "user-1",
		Type:        domain.OperationWithdraw,
		Amount:      decimal.RequireFromString("12.50"),
		Description: "rent",
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	msg, err := newMessage(NewStatementCreated(statement))
	require.NoError(t, err)
	assert.Equal(t, []byte("user-1"), msg.Key)

	var decoded StatementCreated
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "statement-1", decoded.StatementID)
	assert.Equal(t, "user-1", decoded.UserID)
	assert.Equal(t, domain.OperationWithdraw, decoded.Type)
	assert.True(t, statement.Amount.Equal(decoded.Amount))
	assert.True(t, statement.CreatedAt.Equal(decoded.OccurredAt))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), StatementCreated{}))
	assert.NoError(t, p.Close())
}
