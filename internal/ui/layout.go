package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/studysync/studysync/internal/theme"
)

// Frame is the fixed chrome of a full-screen view: a one-line header, a
// body, and a one-line status bar.
type Frame struct {
	Width  int
	Height int
}

// NewFrame creates a Frame for a terminal of the given size.
func NewFrame(width, height int) Frame {
	return Frame{Width: width, Height: height}
}

// BodyHeight returns the rows left for the body, never less than one.
func (f Frame) BodyHeight() int {
	return max(f.Height-2, 1)
}

// Header renders title on the left and status on the right.
func (f Frame) Header(title, status string) string {
	return f.bar(theme.HeaderStyle, title, status)
}

// StatusBar renders the bottom bar with keyboard hints.
func (f Frame) StatusBar(hints string) string {
	return f.bar(theme.StatusBarStyle, hints, "")
}

// Render stacks header, body and status bar. The body is padded to
// BodyHeight so the status bar stays pinned to the bottom.
func (f Frame) Render(header, body, statusBar string) string {
	body = lipgloss.NewStyle().Height(f.BodyHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

// bar renders left and right segments in style, filling the gap between
// them so the bar spans the full width.
func (f Frame) bar(style lipgloss.Style, left, right string) string {
	l := style.Render(left)
	r := ""
	if right != "" {
		r = style.Render(right)
	}

	gap := max(f.Width-lipgloss.Width(l)-lipgloss.Width(r), 0)
	fill := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, l, fill, r)
}
