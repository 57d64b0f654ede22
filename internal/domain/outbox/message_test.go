package outbox

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nobanko/banking-core/internal/domain/ledger"
	"github.com/nobanko/banking-core/internal/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	entry := ledger.NewEntry(uuid.New(), ledger.EntryKindCredit, money.MustParse("300.00"), money.MustParse("1300.00"), "Deposit")

	msg, err := NewMessage(entry)
	require.NoError(t, err)

	assert.Equal(t, entry.ID, msg.EntryID)
	assert.Equal(t, entry.ClientID, msg.ClientID)
	assert.Equal(t, StatusPending, msg.Status)
	assert.Zero(t, msg.Attempts)

	decoded, err := msg.Entry()
	require.NoError(t, err)
	assert.Equal(t, entry.ID, decoded.ID)
	assert.True(t, entry.Amount.Equal(decoded.Amount))
	assert.True(t, entry.BalanceAfter.Equal(decoded.BalanceAfter))
	assert.Equal(t, entry.Description, decoded.Description)
}
