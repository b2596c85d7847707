// Package board holds the stock board: a fixed index of widget slots keyed
// by ticker symbol, plus the pure quote arithmetic applied to them.
//
// The index is the terminal's equivalent of the web dashboard's static
// markup: it is built once, before the first stock poll, and quotes whose
// symbol was not present at build time are silently dropped. No slot is
// ever created dynamically.
package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/mks/bankboard/internal/api"
)

// NeutralGlyph is rendered when no percent change can be computed.
const NeutralGlyph = "•"

// PriceSentinel is rendered while no usable price has been delivered.
const PriceSentinel = "-"

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

// Change is the rendered percent-change indicator. Dir drives the up/down
// styling; DirNone carries no directional styling at all.
type Change struct {
	Dir  Direction
	Text string
}

// Slot is one stock widget's display state.
type Slot struct {
	Symbol string
	Name   string
	Price  string
	Change Change
}

// Board maps symbols to their widget slots.
type Board struct {
	order []string
	slots map[string]*Slot
}

// New builds the symbol index from the widgets present at startup,
// preserving order and dropping blanks and duplicates. The mapping is
// read-only after construction, which is what makes it safe to share
// across interleaved poll cycles.
func New(symbols []string) *Board {
	b := &Board{slots: make(map[string]*Slot)}
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		if _, dup := b.slots[sym]; dup {
			continue
		}
		b.order = append(b.order, sym)
		b.slots[sym] = &Slot{
			Symbol: sym,
			Name:   sym,
			Price:  PriceSentinel,
			Change: Change{Dir: DirNone, Text: NeutralGlyph},
		}
	}
	return b
}

// Apply patches one quote into its slot. It reports false, changing
// nothing, when the symbol was not present at index-build time.
func (b *Board) Apply(q api.Quote) bool {
	slot, ok := b.slots[q.Symbol]
	if !ok {
		return false
	}
	slot.Price = FormatMoney(q.Price)
	if q.Name != "" {
		slot.Name = q.Name
	} else {
		slot.Name = q.Symbol
	}
	slot.Change = FormatChange(q.Price, q.PrevPrice)
	return true
}

// Restore primes a slot with previously rendered state, for warm starts
// from a session snapshot. Unknown symbols are dropped, same as live
// quotes.
func (b *Board) Restore(sym, name, price string, ch Change) bool {
	slot, ok := b.slots[sym]
	if !ok {
		return false
	}
	if name != "" {
		slot.Name = name
	}
	if price != "" {
		slot.Price = price
	}
	if ch.Text != "" {
		slot.Change = ch
	}
	return true
}

// Slots returns copies of the widgets in index order.
func (b *Board) Slots() []Slot {
	out := make([]Slot, 0, len(b.order))
	for _, sym := range b.order {
		out = append(out, *b.slots[sym])
	}
	return out
}

// Len reports the number of indexed widgets.
func (b *Board) Len() int { return len(b.order) }

// FormatMoney renders a price as dollars with two decimals, or the "-"
// sentinel when the value is missing or not finite.
func FormatMoney(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return PriceSentinel
	}
	return fmt.Sprintf("$%.2f", *v)
}

// PctChange returns the percent move from prev to price. ok is false when
// either side is missing or not finite, or prev is zero.
func PctChange(price, prev *float64) (float64, bool) {
	if price == nil || prev == nil {
		return 0, false
	}
	p, q := *price, *prev
	if math.IsNaN(p) || math.IsInf(p, 0) || math.IsNaN(q) || math.IsInf(q, 0) || q == 0 {
		return 0, false
	}
	return (p - q) / q * 100, true
}

// Classify partitions percent changes: zero counts as up, so up and down
// together cover every computable value.
func Classify(pct float64) Direction {
	if pct >= 0 {
		return DirUp
	}
	return DirDown
}

// FormatChange computes and renders the change indicator for a quote.
func FormatChange(price, prev *float64) Change {
	pct, ok := PctChange(price, prev)
	if !ok {
		return Change{Dir: DirNone, Text: NeutralGlyph}
	}
	dir := Classify(pct)
	arrow := "⌃"
	if dir == DirDown {
		arrow = "⌄"
	}
	return Change{Dir: dir, Text: fmt.Sprintf("%s %.1f%%", arrow, math.Abs(pct))}
}
