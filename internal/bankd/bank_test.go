package bankd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank() *Bank {
	return NewBank([]string{"leo", "daniel"}, 100, NewMarket(nil, 1),
		[]string{"one", "two", "three"}, zerolog.Nop())
}

func TestPlayersSorted(t *testing.T) {
	b := newTestBank()
	assert.Equal(t, []string{"daniel", "leo"}, b.Players())
}

func TestTransferMovesFunds(t *testing.T) {
	b := newTestBank()

	newBal, rejection := b.Transfer("daniel", "leo", 40)
	require.Empty(t, rejection)
	assert.Equal(t, 60, newBal)

	bal, _ := b.Balance("leo")
	assert.Equal(t, 140, bal)
}

func TestTransferExactBalance(t *testing.T) {
	b := newTestBank()

	newBal, rejection := b.Transfer("daniel", "leo", 100)
	require.Empty(t, rejection)
	assert.Equal(t, 0, newBal, "a player may go to zero, just not below")
}

func TestTransferRejectionOrder(t *testing.T) {
	b := newTestBank()

	// Self transfer is detected even when funds would not suffice.
	_, rejection := b.Transfer("daniel", "daniel", 99999)
	assert.Equal(t, ErrSelfTransfer, rejection)

	// Unknown players are detected before the self check.
	_, rejection = b.Transfer("ghost", "ghost", 10)
	assert.Equal(t, ErrUnknownPlayer, rejection)
}

func TestHeadlinesWindow(t *testing.T) {
	b := newTestBank()

	got := b.Headlines(2)
	assert.Len(t, got, 2)

	got = b.Headlines(10)
	assert.Len(t, got, 3, "limit is capped at the pool size")
	assert.ElementsMatch(t, []string{"one", "two", "three"}, got)

	assert.Nil(t, b.Headlines(0))
}

func TestTimeString(t *testing.T) {
	b := newTestBank()
	assert.Regexp(t, `^Day \d+, \d{2}:\d{2}$`, b.TimeString())
}
