package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mks/bankboard/internal/api"
)

func fp(v float64) *float64 { return &v }

func TestNew(t *testing.T) {
	b := New([]string{"XOM", " CVX ", "", "XOM", "GOOG"})
	require.Equal(t, 3, b.Len(), "blanks and duplicates are dropped")

	slots := b.Slots()
	assert.Equal(t, "XOM", slots[0].Symbol)
	assert.Equal(t, "CVX", slots[1].Symbol)
	assert.Equal(t, "GOOG", slots[2].Symbol)

	for _, s := range slots {
		assert.Equal(t, s.Symbol, s.Name, "name defaults to the symbol")
		assert.Equal(t, PriceSentinel, s.Price)
		assert.Equal(t, DirNone, s.Change.Dir)
		assert.Equal(t, NeutralGlyph, s.Change.Text)
	}
}

func TestApply(t *testing.T) {
	b := New([]string{"XOM"})

	ok := b.Apply(api.Quote{Symbol: "XOM", Name: "Exxogen", Price: fp(110), PrevPrice: fp(100)})
	require.True(t, ok)

	s := b.Slots()[0]
	assert.Equal(t, "Exxogen", s.Name)
	assert.Equal(t, "$110.00", s.Price)
	assert.Equal(t, DirUp, s.Change.Dir)
	assert.Equal(t, "⌃ 10.0%", s.Change.Text)
}

func TestApplyUnknownSymbolDropped(t *testing.T) {
	b := New([]string{"XOM"})
	before := b.Slots()

	ok := b.Apply(api.Quote{Symbol: "ZZZ", Price: fp(1)})
	assert.False(t, ok)
	assert.Equal(t, 1, b.Len(), "no slot is created for an unindexed symbol")
	assert.Equal(t, before, b.Slots())
}

func TestApplyMissingFields(t *testing.T) {
	b := New([]string{"XOM"})

	// Name updated previously, then a quote arrives without one.
	b.Apply(api.Quote{Symbol: "XOM", Name: "Exxogen", Price: fp(100), PrevPrice: fp(100)})
	b.Apply(api.Quote{Symbol: "XOM", Price: nil, PrevPrice: nil})

	s := b.Slots()[0]
	assert.Equal(t, "XOM", s.Name, "an absent name falls back to the symbol")
	assert.Equal(t, PriceSentinel, s.Price)
	assert.Equal(t, NeutralGlyph, s.Change.Text)
}

func TestRestore(t *testing.T) {
	b := New([]string{"XOM"})

	assert.True(t, b.Restore("XOM", "Exxogen", "$99.00", Change{Dir: DirDown, Text: "⌄ 1.0%"}))
	assert.False(t, b.Restore("ZZZ", "Nope", "$1.00", Change{}))

	s := b.Slots()[0]
	assert.Equal(t, "Exxogen", s.Name)
	assert.Equal(t, "$99.00", s.Price)
	assert.Equal(t, DirDown, s.Change.Dir)

	// Empty fields keep whatever the slot already shows.
	b.Restore("XOM", "", "", Change{})
	assert.Equal(t, "$99.00", b.Slots()[0].Price)
}

func TestFormatMoney(t *testing.T) {
	nan := fp(0)
	*nan = *nan / *nan // NaN without importing math in the table

	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"value", fp(1234.5), "$1234.50"},
		{"zero", fp(0), "$0.00"},
		{"nil", nil, "-"},
		{"nan", nan, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.in))
		})
	}
}

func TestPctChange(t *testing.T) {
	tests := []struct {
		name    string
		price   *float64
		prev    *float64
		want    float64
		wantOK  bool
	}{
		{"up ten percent", fp(110), fp(100), 10, true},
		{"down ten percent", fp(90), fp(100), -10, true},
		{"flat", fp(100), fp(100), 0, true},
		{"nil price", nil, fp(100), 0, false},
		{"nil prev", fp(100), nil, 0, false},
		{"zero prev", fp(100), fp(0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PctChange(tt.price, tt.prev)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, DirUp, Classify(5))
	assert.Equal(t, DirUp, Classify(0), "zero counts as up")
	assert.Equal(t, DirDown, Classify(-0.1))
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		prev  *float64
		want  Change
	}{
		{"up", fp(110), fp(100), Change{Dir: DirUp, Text: "⌃ 10.0%"}},
		{"down", fp(90), fp(100), Change{Dir: DirDown, Text: "⌄ 10.0%"}},
		{"flat is up", fp(100), fp(100), Change{Dir: DirUp, Text: "⌃ 0.0%"}},
		{"incomputable", fp(100), nil, Change{Dir: DirNone, Text: NeutralGlyph}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatChange(tt.price, tt.prev))
		})
	}
}
