package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portfolio/internal/view"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#2A75BB", Dark: "#5DA9E9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorError   = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)
)

// TerminalRenderer draws pages for the command line
type TerminalRenderer struct {
	Width int
}

func NewTerminalRenderer(width int) *TerminalRenderer {
	if width < 40 {
		width = 80
	}
	return &TerminalRenderer{Width: width}
}

func (r *TerminalRenderer) Render(w io.Writer, page *view.Page) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render(page.Title))
	b.WriteString("\n\n")

	switch {
	case page.State == view.StateFailed:
		b.WriteString(errorStyle.Render(page.Message))
		b.WriteString("\n")
		if page.ProfileURL != "" {
			b.WriteString(linkStyle.Render(page.ProfileURL))
			b.WriteString("\n")
		}
	case page.Message != "":
		b.WriteString(filterLine("Category", page.Categories))
		b.WriteString(filterLine("Year", page.Years))
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(page.Message))
		b.WriteString("\n")
	default:
		b.WriteString(filterLine("Category", page.Categories))
		b.WriteString(filterLine("Year", page.Years))
		b.WriteString("\n")
		for _, card := range page.Cards {
			b.WriteString(r.card(card))
			b.WriteString("\n")
		}
		if page.Pagination != nil {
			b.WriteString(metaStyle.Render(fmt.Sprintf("Page %d of %d (%d articles)", page.CurrentPage, page.TotalPages, page.Filtered)))
			b.WriteString("\n")
		}
	}

	if page.LastUpdated != "" {
		b.WriteString("\n")
		b.WriteString(metaStyle.Render("Last updated " + page.LastUpdated))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *TerminalRenderer) card(card view.Card) string {
	width := r.Width - 4

	lines := []string{
		metaStyle.Render(card.Category + " · " + card.Date),
		titleStyle.Render(truncate(card.Title, width)),
		lipgloss.NewStyle().Width(width).Render(card.Summary),
	}
	if len(card.Tags) > 0 {
		tags := make([]string, len(card.Tags))
		for i, tag := range card.Tags {
			tags[i] = tagStyle.Render("#" + tag)
		}
		lines = append(lines, strings.Join(tags, " "))
	}
	lines = append(lines, linkStyle.Render(card.URL))

	return cardStyle.Width(r.Width - 2).Render(strings.Join(lines, "\n"))
}

func filterLine(label string, options []view.Option) string {
	if len(options) == 0 {
		return ""
	}
	parts := make([]string, len(options))
	for i, opt := range options {
		if opt.Active {
			parts[i] = activeStyle.Render("[" + opt.Label + "]")
		} else {
			parts[i] = opt.Label
		}
	}
	return metaStyle.Render(label+":") + " " + strings.Join(parts, " ") + "\n"
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
