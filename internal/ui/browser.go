package ui

import (
	"net/url"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
)

// openNewsPage opens the headlines page in the system browser, carrying the
// identity forward when one is set.
func (m Model) openNewsPage() tea.Cmd {
	target := m.cfg.NewsPageURL
	if m.username != "" {
		target += "?username=" + url.QueryEscape(m.username)
	}
	return m.openURL(target)
}

// openStockPage opens a stock's detail page. The username parameter is
// always present, empty for anonymous viewers, matching the web dashboard's
// links.
func (m Model) openStockPage(symbol string) tea.Cmd {
	target := m.cfg.StockPageURL +
		"?username=" + url.QueryEscape(m.username) +
		"&stock=" + url.QueryEscape(symbol)
	return m.openURL(target)
}

// openURL launches the browser without waiting on it. A missing or broken
// browser only gets logged; it must never take the dashboard down.
func (m Model) openURL(target string) tea.Cmd {
	log := m.log
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", target)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
		default:
			cmd = exec.Command("xdg-open", target)
		}
		if err := cmd.Start(); err != nil {
			log.Warn().Err(err).Str("url", target).Msg("failed to open browser")
		}
		return nil
	}
}
