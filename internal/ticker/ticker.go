// Package ticker implements the news marquee core: headline escaping, strip
// composition, and the wraparound scroll arithmetic. Nothing here touches
// the rendering surface, so all of it is testable in isolation.
package ticker

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

const (
	// Speed is the leftward scroll in cells per frame, matching the web
	// marquee's 0.6 px per frame.
	Speed = 0.6

	// SettleDelay is how long after a content swap the strip width is
	// re-measured. Until then the previous width stays in force as the
	// wraparound modulus; a briefly stale modulus is accepted.
	SettleDelay = 200 * time.Millisecond

	// FrameInterval paces the animator's self-rescheduling tick.
	FrameInterval = 33 * time.Millisecond
)

// FallbackHeadline fills the strip when no headlines have ever arrived.
const FallbackHeadline = "No news yet."

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHeadline entity-escapes the characters that are markup-significant
// on the web dashboard fed by the same backend, so both surfaces present
// identical inert text. The apostrophe uses the web front end's &#039;
// form, which is why html.EscapeString is not used here.
func EscapeHeadline(s string) string {
	return escaper.Replace(s)
}

// Strip is the rendered marquee content: two back-to-back copies of the
// headline list. The duplication is what makes the wraparound seamless:
// when the offset resets, the second copy is already positioned to
// continue the pattern.
type Strip struct {
	single  string
	doubled string
}

// BuildStrip composes the strip from headlines, escaping each one. An empty
// list renders the fallback item so the marquee is never blank.
func BuildStrip(headlines []string) Strip {
	if len(headlines) == 0 {
		headlines = []string{FallbackHeadline}
	}
	var b strings.Builder
	for _, h := range headlines {
		b.WriteString("• ")
		b.WriteString(EscapeHeadline(h))
		b.WriteString("   ")
	}
	single := b.String()
	return Strip{single: single, doubled: single + single}
}

// Width measures the single-copy cell width of the rendered strip. It is
// the wraparound modulus.
func (s Strip) Width() int {
	return ansi.StringWidth(s.single)
}

// Empty reports whether the strip has never been built.
func (s Strip) Empty() bool { return s.single == "" }

// Advance moves the offset one frame leftward and wraps it to zero once its
// magnitude reaches width. The invariant 0 <= -offset < width holds after
// every step for any positive width.
func Advance(offset float64, width int) float64 {
	offset -= Speed
	if width > 0 && -offset >= float64(width) {
		offset = 0
	}
	return offset
}

// Window returns the viewWidth-cell slice of the scrolled strip starting at
// -offset. The strip repeats as needed so the window is always full, even
// when the content is narrower than the viewport.
func (s Strip) Window(offset float64, viewWidth int) string {
	if viewWidth <= 0 || s.single == "" {
		return ""
	}
	start := int(-offset)
	if start < 0 {
		start = 0
	}
	content := s.doubled
	for ansi.StringWidth(content) < start+viewWidth {
		content += s.single
	}
	return ansi.Cut(content, start, start+viewWidth)
}
