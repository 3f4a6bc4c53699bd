package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/JaimeStill/aicomply/internal/risk"
)

// styles renders report text. Disabled styles pass text through unchanged.
type styles struct {
	enabled bool

	header lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	badges map[risk.Category]lipgloss.Style
}

func newStyles(enabled bool) *styles {
	s := &styles{
		enabled: enabled,
		header:  lipgloss.NewStyle(),
		label:   lipgloss.NewStyle(),
		muted:   lipgloss.NewStyle(),
		badges:  make(map[risk.Category]lipgloss.Style),
	}
	if !enabled {
		return s
	}

	s.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	s.label = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	s.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	badge := func(bg string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color(bg))
	}
	s.badges[risk.CategoryProhibited] = badge("9")
	s.badges[risk.CategoryHighRisk] = badge("11")
	s.badges[risk.CategoryLimitedRisk] = badge("12")
	s.badges[risk.CategoryMinimalRisk] = badge("10")
	s.badges[risk.CategoryUnknown] = badge("7")
	return s
}

// stylesFor enables styling only when w is a terminal.
func stylesFor(w io.Writer) *styles {
	f, ok := w.(*os.File)
	return newStyles(ok && term.IsTerminal(int(f.Fd())))
}

// badge renders the category label; plain output brackets it instead.
func (s *styles) badge(c risk.Category) string {
	label := c.Label()
	if !s.enabled {
		return "[" + label + "]"
	}
	if style, ok := s.badges[c]; ok {
		return style.Render(label)
	}
	return s.badges[risk.CategoryUnknown].Render(label)
}
