package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFrame_BodyHeight(t *testing.T) {
	assert.Equal(t, 22, NewFrame(80, 24).BodyHeight())
	assert.Equal(t, 1, NewFrame(80, 2).BodyHeight())
	assert.Equal(t, 1, NewFrame(0, 0).BodyHeight())
}

func TestFrame_BarsSpanWidth(t *testing.T) {
	f := NewFrame(60, 10)

	header := f.Header("StudySync reminders", "2 due")
	assert.Equal(t, 60, lipgloss.Width(header))
	assert.Contains(t, header, "StudySync reminders")
	assert.Contains(t, header, "2 due")

	assert.Equal(t, 60, lipgloss.Width(f.StatusBar("q quit")))
}

func TestFrame_RenderPinsStatusBar(t *testing.T) {
	f := NewFrame(40, 8)
	out := f.Render(f.Header("title", ""), "one line", f.StatusBar("hints"))

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, lines[len(lines)-1], "hints")
}
