package bankd

import (
	"math"
	"math/rand"
	"sync"

	"github.com/mks/bankboard/internal/api"
)

// Stock is one simulated security. Each turn the price is redrawn around a
// slowly drifting mean: the trend decides how many draws are taken and
// whether the best or worst one wins, so a positive trend rolls "with
// advantage" and a negative one against.
type Stock struct {
	Symbol string
	Name   string
	Price  float64
	Prev   float64

	mean       float64
	volatility float64
	trend      int
	softening  float64
	history    []float64
}

// StockParams seeds a stock's random walk.
type StockParams struct {
	Mean       float64
	Volatility float64
	Trend      int
	Softening  float64
}

func NewStock(symbol, name string, p StockParams) *Stock {
	return &Stock{
		Symbol:     symbol,
		Name:       name,
		Price:      p.Mean,
		Prev:       p.Mean,
		mean:       p.Mean,
		volatility: p.Volatility,
		trend:      p.Trend,
		softening:  p.Softening,
	}
}

// retune shifts the walk's parameters when the trend changes. The
// softening factor damps how hard a trend change jerks the mean and
// volatility around.
func (s *Stock) retune(trend int, rng *rand.Rand) {
	s.trend = trend
	s.mean = s.Price + float64(trend)*s.softening
	s.volatility += s.softening * float64(rng.Intn(11)-5)
	if s.volatility < 0.1 {
		s.volatility = 0.1
	}
	s.softening = math.Max(s.softening+rng.NormFloat64()*0.1, 0.1)
}

// step advances the price one turn.
func (s *Stock) step(rng *rand.Rand) {
	draws := abs(s.trend) + 1
	chosen := s.mean + rng.NormFloat64()*s.volatility
	for i := 1; i < draws; i++ {
		p := s.mean + rng.NormFloat64()*s.volatility
		if s.trend > 0 && p > chosen {
			chosen = p
		}
		if s.trend < 0 && p < chosen {
			chosen = p
		}
	}
	// Trends burn out on their own: a 2-in-11 chance per turn.
	if rng.Intn(11) < 2 {
		s.trend = 0
	}
	s.Prev = s.Price
	s.Price = chosen
	s.history = append(s.history, chosen)
}

// Market drives a set of stocks turn by turn.
type Market struct {
	mu     sync.Mutex
	stocks []*Stock
	rng    *rand.Rand
	turn   int
}

// NewMarket wires the stocks to a seeded source so tests can be
// deterministic.
func NewMarket(stocks []*Stock, seed int64) *Market {
	return &Market{
		stocks: stocks,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Update advances every stock one turn. Each turn there is a 2-in-11
// chance per stock that its trend re-rolls in [-3, 3].
func (m *Market) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stocks {
		if m.rng.Intn(11) <= 1 {
			s.retune(m.rng.Intn(7)-3, m.rng)
		}
		s.step(m.rng)
	}
	m.turn++
}

// Turn reports how many updates have run.
func (m *Market) Turn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

// Quotes snapshots the current prices in board order, in the wire shape the
// dashboard consumes.
func (m *Market) Quotes() []api.Quote {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.Quote, 0, len(m.stocks))
	for _, s := range m.stocks {
		price := s.Price
		prev := s.Prev
		out = append(out, api.Quote{
			Symbol:    s.Symbol,
			Name:      s.Name,
			Price:     &price,
			PrevPrice: &prev,
		})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
