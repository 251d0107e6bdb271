// Package style renders terminal text with lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/echo360-dl/echo360/color"
)

// AccentColor frames the course banners.
var AccentColor = color.New("#cba6f7")

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer applying a foreground color.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)
