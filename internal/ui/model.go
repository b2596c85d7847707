// Package ui is the dashboard's bubbletea front end. The model owns one
// screen region per feed (balance widgets, the stock board, the marquee,
// the send panel), so interleaved poll responses never contend for state.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mks/bankboard/internal/api"
	"github.com/mks/bankboard/internal/board"
	"github.com/mks/bankboard/internal/config"
	"github.com/mks/bankboard/internal/session"
	"github.com/mks/bankboard/internal/ticker"
	"github.com/mks/bankboard/internal/transfer"
)

// Sentinel display values for the balance widgets. Shown when the server
// answers ok:false; a transport failure keeps the previous values instead.
const (
	BalanceSentinel = "unknown"
	TimeSentinel    = "-"
)

type panelState int

const (
	panelClosed panelState = iota
	panelOpen
)

type Model struct {
	cfg    *config.Config
	client *api.Client
	log    zerolog.Logger

	// Viewing identity, resolved once at startup. Empty means anonymous:
	// the header shows "?" and the balance feed never polls.
	username string

	// Balance widgets
	connected  bool
	balance    string
	timeString string

	// Stock board: symbol→slot index built once, before the first poll.
	board *board.Board

	// Marquee
	headlines  []string
	strip      ticker.Strip
	stripWidth int // wraparound modulus; re-measured after the settle delay
	offset     float64
	animating  bool

	// Send panel
	panel        panelState
	roster       []string
	cursor       int
	amount       textinput.Model
	status       string
	statusErr    bool
	rosterBusy   bool
	transferBusy bool

	// In-flight guards: a tick that fires while the previous request is
	// still pending skips the fetch and just re-arms.
	userBusy   bool
	stocksBusy bool
	newsBusy   bool

	width  int
	height int
	ready  bool
}

// NewModel builds the dashboard, warm-started from a previous session's
// snapshot when one exists.
func NewModel(cfg *config.Config, client *api.Client, snap session.Snapshot, log zerolog.Logger) Model {
	amount := textinput.New()
	amount.Placeholder = "amount"
	amount.Prompt = "$ "
	amount.CharLimit = 9
	amount.Width = 12

	m := Model{
		cfg:        cfg,
		client:     client,
		log:        log.With().Str("component", "ui").Logger(),
		username:   cfg.Username,
		connected:  true,
		balance:    "-",
		timeString: TimeSentinel,
		board:      board.New(cfg.Symbols),
		amount:     amount,
	}

	if snap.Balance != "" {
		m.balance = snap.Balance
	}
	if snap.TimeString != "" {
		m.timeString = snap.TimeString
	}
	for _, q := range snap.Quotes {
		m.board.Restore(q.Symbol, q.Name, q.Price, board.Change{
			Dir:  board.Direction(q.ChangeDir),
			Text: q.ChangeText,
		})
	}
	if len(snap.Headlines) > 0 {
		m.headlines = snap.Headlines
		m.strip = ticker.BuildStrip(snap.Headlines)
		m.stripWidth = m.strip.Width()
	}

	return m
}

// Snapshot exports the display state worth keeping across a restart.
func (m Model) Snapshot() session.Snapshot {
	snap := session.Snapshot{
		Username:   m.username,
		Balance:    m.balance,
		TimeString: m.timeString,
		Headlines:  m.headlines,
	}
	for _, s := range m.board.Slots() {
		snap.Quotes = append(snap.Quotes, session.QuoteCell{
			Symbol:     s.Symbol,
			Name:       s.Name,
			Price:      s.Price,
			ChangeText: s.Change.Text,
			ChangeDir:  int(s.Change.Dir),
		})
	}
	return snap
}

// Messages

type userTickMsg struct{}
type stockTickMsg struct{}
type newsTickMsg struct{}

// frameMsg paces the marquee animator.
type frameMsg time.Time

// settleMsg re-measures the strip width after a content swap.
type settleMsg struct{}

type userMsg struct {
	state api.UserState
	err   error
}

type stocksMsg struct {
	list api.StockList
	err  error
}

type newsMsg struct {
	news api.News
	err  error
}

type rosterMsg struct {
	roster api.Roster
	err    error
}

type transferMsg struct {
	result api.TransferResult
	err    error
}

// Init fires every feed once immediately, independent of its interval. The
// tick messages route through Update so the in-flight guards apply from
// the very first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fireNow(userTickMsg{}),
		fireNow(stockTickMsg{}),
		fireNow(newsTickMsg{}),
	)
}

// Commands

func fireNow(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func frameCmd() tea.Cmd {
	return tea.Tick(ticker.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func settleCmd() tea.Cmd {
	return tea.Tick(ticker.SettleDelay, func(time.Time) tea.Msg { return settleMsg{} })
}

func (m Model) fetchUser() tea.Cmd {
	c, u := m.client, m.username
	return func() tea.Msg {
		s, err := c.User(u)
		return userMsg{s, err}
	}
}

func (m Model) fetchStocks() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		l, err := c.Stocks()
		return stocksMsg{l, err}
	}
}

func (m Model) fetchNews() tea.Cmd {
	c, limit := m.client, m.cfg.HeadlineLimit
	return func() tea.Msg {
		n, err := c.News(limit)
		return newsMsg{n, err}
	}
}

func (m Model) fetchRoster() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		r, err := c.Users()
		return rosterMsg{r, err}
	}
}

func (m Model) sendTransfer(req transfer.Request) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		res, err := c.Transfer(req)
		return transferMsg{res, err}
	}
}
