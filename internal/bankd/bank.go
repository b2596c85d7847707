// Package bankd is an in-memory development bank server. It implements the
// five endpoints the dashboard polls so the client can run, and be tested,
// without the real game server.
package bankd

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Transfer rejection messages. These travel in the response's error field
// and end up verbatim on the dashboard's status line.
const (
	ErrUnknownPlayer     = "Unknown player."
	ErrInvalidAmount     = "Invalid amount."
	ErrSelfTransfer      = "Cannot send money to yourself."
	ErrInsufficientFunds = "Insufficient funds."
)

// headlineRotation is how long each window of headlines stays current.
const headlineRotation = 30 * time.Second

// Bank holds the players' money balances, the market, and the news pool.
type Bank struct {
	mu        sync.Mutex
	balances  map[string]int
	players   []string
	market    *Market
	headlines []string
	epoch     time.Time
	log       zerolog.Logger
}

func NewBank(players []string, startingMoney int, market *Market, headlines []string, log zerolog.Logger) *Bank {
	sorted := append([]string(nil), players...)
	sort.Strings(sorted)

	balances := make(map[string]int, len(sorted))
	for _, p := range sorted {
		balances[p] = startingMoney
	}
	return &Bank{
		balances:  balances,
		players:   sorted,
		market:    market,
		headlines: headlines,
		epoch:     time.Now(),
		log:       log.With().Str("component", "bank").Logger(),
	}
}

// Players returns the roster in sorted order.
func (b *Bank) Players() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.players...)
}

// Balance reports a player's money balance.
func (b *Bank) Balance(name string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bal, ok := b.balances[name]
	return bal, ok
}

// Transfer moves amount from one player to another and returns the sender's
// new balance. A non-empty message means the transfer was rejected and
// nothing moved.
func (b *Bank) Transfer(from, to string, amount int) (int, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	fromBal, ok := b.balances[from]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	if _, ok := b.balances[to]; !ok {
		return 0, ErrUnknownPlayer
	}
	if from == to {
		return 0, ErrSelfTransfer
	}
	if fromBal < amount {
		return 0, ErrInsufficientFunds
	}

	b.balances[from] -= amount
	b.balances[to] += amount
	return b.balances[from], ""
}

// TimeString renders the game clock. One real second is one game minute,
// so a full game day passes every 24 real minutes.
func (b *Bank) TimeString() string {
	total := int(time.Since(b.epoch).Seconds())
	day := total/(24*60) + 1
	hour := (total / 60) % 24
	minute := total % 60
	return fmt.Sprintf("Day %d, %02d:%02d", day, hour, minute)
}

// Headlines returns up to limit headlines from the pool, rotating the
// window over time so the marquee has something new to say.
func (b *Bank) Headlines(limit int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if limit <= 0 || len(b.headlines) == 0 {
		return nil
	}
	if limit > len(b.headlines) {
		limit = len(b.headlines)
	}
	start := int(time.Since(b.epoch)/headlineRotation) % len(b.headlines)
	out := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, b.headlines[(start+i)%len(b.headlines)])
	}
	return out
}

// Run advances the market until ctx is done. It is the server-side
// counterpart of the dashboard's stock poll.
func (b *Bank) Run(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			b.market.Update()
		}
	}
}

// DefaultPlayers mirrors the game's stock roster.
func DefaultPlayers() []string {
	return []string{"daniel", "leo", "mae", "nikola", "renee"}
}

// DefaultStartingMoney is each player's opening balance.
const DefaultStartingMoney = 2000

// DefaultStocks builds the nine securities the dashboard's board indexes
// by default.
func DefaultStocks() []*Stock {
	return []*Stock{
		NewStock("XOM", "Exxo-Mobil Energy", StockParams{Mean: 100, Volatility: 2, Softening: 1}),
		NewStock("CVX", "Chevoron Oil", StockParams{Mean: 120, Volatility: 2, Softening: 0.8}),
		NewStock("ALD", "Allied Chemicals", StockParams{Mean: 50, Volatility: 1, Softening: 0.2}),
		NewStock("APPL", "Appleton Computers", StockParams{Mean: 200, Volatility: 3, Softening: 2}),
		NewStock("MFST", "MicroFirst Software", StockParams{Mean: 180, Volatility: 3, Softening: 1.5}),
		NewStock("GOOG", "Googolplex Search", StockParams{Mean: 150, Volatility: 2, Softening: 1}),
		NewStock("PFE", "Pfeiffer Pharma", StockParams{Mean: 75, Volatility: 2, Softening: 0.2}),
		NewStock("JNJ", "Jensen & Jensen Health", StockParams{Mean: 90, Volatility: 1, Softening: 0.5}),
		NewStock("CSL", "Carlisle Biologics", StockParams{Mean: 60, Volatility: 1, Softening: 0.3}),
	}
}

// DefaultHeadlines seeds the news pool with the game's event feed.
func DefaultHeadlines() []string {
	return []string{
		"Global pandemic rocks economy!",
		"A boom in crypto has caused investors to withdraw their money from the stock market!",
		"An economic bubble popped! Investors flock to assets which make sense",
		"Dividend paid! All shareholders receive money equal to 10% of their holdings!",
		"Major acquisition announced!",
		"Major acquisition falls through!",
		"New green tech is threatening company's market share",
		"Exciting new product is announced!",
		"Company is impacted by global chip-shortage",
		"A major hack has caused loss in consumer confidence",
		"Patent expiration on drug where company dominated market",
	}
}
