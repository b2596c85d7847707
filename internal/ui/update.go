package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mks/bankboard/internal/ticker"
	"github.com/mks/bankboard/internal/transfer"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if c := m.maybeAnimate(); c != nil {
			cmds = append(cmds, c)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case userTickMsg:
		cmds = append(cmds, tickAfter(m.cfg.UserPollInterval, userTickMsg{}))
		if !m.userBusy && m.username != "" {
			m.userBusy = true
			cmds = append(cmds, m.fetchUser())
		}

	case stockTickMsg:
		cmds = append(cmds, tickAfter(m.cfg.StockPollInterval, stockTickMsg{}))
		if !m.stocksBusy {
			m.stocksBusy = true
			cmds = append(cmds, m.fetchStocks())
		}

	case newsTickMsg:
		cmds = append(cmds, tickAfter(m.cfg.NewsPollInterval, newsTickMsg{}))
		if !m.newsBusy {
			m.newsBusy = true
			cmds = append(cmds, m.fetchNews())
		}

	case userMsg:
		m.userBusy = false
		switch {
		case msg.err != nil:
			// Transport failure: keep the last values on screen.
			m.connected = false
			m.log.Warn().Err(msg.err).Msg("balance poll failed")
		case !msg.state.OK:
			m.connected = true
			m.balance = BalanceSentinel
			m.timeString = TimeSentinel
		default:
			m.connected = true
			m.balance = msg.state.Balance.String()
			if m.balance == "" {
				m.balance = "-"
			}
			m.timeString = msg.state.TimeString
			if m.timeString == "" {
				m.timeString = TimeSentinel
			}
		}

	case stocksMsg:
		m.stocksBusy = false
		if msg.err != nil {
			m.connected = false
			m.log.Warn().Err(msg.err).Msg("stock poll failed")
			break
		}
		if msg.list.OK {
			m.connected = true
			for _, q := range msg.list.Stocks {
				// Quotes for symbols outside the startup index are dropped.
				m.board.Apply(q)
			}
		}

	case newsMsg:
		m.newsBusy = false
		if msg.err != nil {
			m.connected = false
			m.log.Warn().Err(msg.err).Msg("news poll failed")
		} else {
			m.connected = true
			var headlines []string
			if msg.news.OK {
				for _, item := range msg.news.Items {
					headlines = append(headlines, item.Headline)
				}
			}
			// A later empty fetch keeps the current strip; only the first
			// build accepts emptiness so the fallback item appears.
			if len(headlines) > 0 || m.strip.Empty() {
				m.setHeadlines(headlines)
				cmds = append(cmds, settleCmd())
			}
		}
		if m.strip.Empty() {
			// First fetch failed outright: seed the fallback so the
			// animator has content to loop.
			m.setHeadlines(nil)
			cmds = append(cmds, settleCmd())
		}
		if c := m.maybeAnimate(); c != nil {
			cmds = append(cmds, c)
		}

	case frameMsg:
		if m.animating {
			m.offset = ticker.Advance(m.offset, m.stripWidth)
			cmds = append(cmds, frameCmd())
		}

	case settleMsg:
		m.stripWidth = m.strip.Width()

	case rosterMsg:
		m.rosterBusy = false
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("roster fetch failed")
			break
		}
		if msg.roster.OK {
			m.roster = nil
			for _, u := range msg.roster.Users {
				if u != m.username {
					m.roster = append(m.roster, u)
				}
			}
			m.cursor = 0
		}

	case transferMsg:
		m.transferBusy = false
		switch {
		case msg.err != nil:
			m.connected = false
			m.status = transfer.MsgFailed
			m.statusErr = true
			m.log.Warn().Err(msg.err).Msg("transfer request failed")
		case msg.result.OK:
			m.status = transfer.MsgSuccess
			m.statusErr = false
			// Server-confirmed balance, applied immediately rather than
			// waiting for the next poll.
			if b := msg.result.FromBalance.String(); b != "" {
				m.balance = b
			}
			m.amount.SetValue("")
			// Out-of-band balance refresh to reconcile the game clock and
			// anything else the transfer response doesn't echo.
			if !m.userBusy && m.username != "" {
				m.userBusy = true
				cmds = append(cmds, m.fetchUser())
			}
		default:
			m.status = msg.result.Error
			if m.status == "" {
				m.status = transfer.MsgFailed
			}
			m.statusErr = true
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.panel == panelOpen {
		switch {
		case key.Matches(msg, keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, keys.Close):
			m.closePanel()
			return m, nil
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.roster)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.Submit):
			return m, m.submit()
		}
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Send):
		return m, m.openPanel()
	case key.Matches(msg, keys.News):
		return m, m.openNewsPage()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	g := m.geometry()
	switch {
	case msg.Y < g.marqueeRows:
		// The whole marquee is one activation target.
		return m, m.openNewsPage()
	case msg.Y >= g.gridTop:
		if sym, ok := m.hitStock(g, msg.X, msg.Y); ok {
			return m, m.openStockPage(sym)
		}
	}
	return m, nil
}

// Panel state machine: Closed→Open and Open→Closed on explicit toggles
// only. Every open re-fetches the roster; nothing is cached across opens.

func (m *Model) openPanel() tea.Cmd {
	m.panel = panelOpen
	m.status = ""
	m.statusErr = false
	m.roster = nil
	m.cursor = 0
	m.amount.Focus()
	m.rosterBusy = true
	return m.fetchRoster()
}

func (m *Model) closePanel() {
	m.panel = panelClosed
	m.status = ""
	m.statusErr = false
	m.amount.Blur()
}

// submit validates and, only when everything passes, issues exactly one
// transfer request.
func (m *Model) submit() tea.Cmd {
	if m.transferBusy {
		return nil
	}
	var to string
	if m.cursor >= 0 && m.cursor < len(m.roster) {
		to = m.roster[m.cursor]
	}
	req, errMsg := transfer.Build(m.username, to, m.amount.Value())
	if errMsg != "" {
		m.status = errMsg
		m.statusErr = true
		return nil
	}
	m.transferBusy = true
	return m.sendTransfer(req)
}

// setHeadlines swaps the marquee content. The wraparound modulus keeps its
// previous value until the settle tick re-measures it; the first build has
// no previous value, so it measures immediately.
func (m *Model) setHeadlines(headlines []string) {
	m.headlines = headlines
	m.strip = ticker.BuildStrip(headlines)
	if m.stripWidth == 0 {
		m.stripWidth = m.strip.Width()
	}
}

// maybeAnimate starts the render loop once the screen is sized and initial
// headline content exists. The loop then reschedules itself for the life
// of the program.
func (m *Model) maybeAnimate() tea.Cmd {
	if m.animating || !m.ready || m.strip.Empty() {
		return nil
	}
	m.animating = true
	return frameCmd()
}
