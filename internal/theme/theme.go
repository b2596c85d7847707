package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the semantic color palette for the entire dashboard.
type Theme struct {
	Base    lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// Default palette. Success and Error deliberately echo the web dashboard's
// green / crimson status hues so both front ends read the same.
var Default = Theme{
	Base:    lipgloss.Color("#16161D"),
	Surface: lipgloss.Color("#24242E"),
	Border:  lipgloss.Color("#45454F"),
	Muted:   lipgloss.Color("#7E7D8A"),
	Text:    lipgloss.Color("#E3E0DE"),
	Primary: lipgloss.Color("#3C78F0"),
	Accent:  lipgloss.Color("#F0B429"),
	Success: lipgloss.Color("#2EB86B"),
	Error:   lipgloss.Color("#DC143C"),
	Info:    lipgloss.Color("#38B2AC"),
}

// GradientText applies a horizontal color gradient across each line of text.
func GradientText(text string, from, to lipgloss.Color) string {
	fr, fg, fb := hexToRGB(string(from))
	tr, tg, tb := hexToRGB(string(to))

	var out []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		n := len(runes)
		if n == 0 {
			out = append(out, "")
			continue
		}
		var sb strings.Builder
		for i, r := range runes {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			cr := uint8(math.Round(float64(fr) + t*float64(int(tr)-int(fr))))
			cg := uint8(math.Round(float64(fg) + t*float64(int(tg)-int(fg))))
			cb := uint8(math.Round(float64(fb) + t*float64(int(tb)-int(fb))))
			color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", cr, cg, cb))
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func hexToRGB(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
