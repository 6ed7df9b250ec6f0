// Package styles holds the lipgloss styles shared by the TUI, built from
// the configured theme colors.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"peekd/internal/config"
)

// Theme defines the core UI styles. Apply rebuilds it from configuration;
// the zero value matches the default theme.
var Theme = build(config.GetTheme("default"))

type themeStyles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Marked   lipgloss.Style
	Unmarked lipgloss.Style
	Dir      lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Overlay  lipgloss.Style
	ViewName lipgloss.Style
}

// Apply rebuilds the shared styles from the loaded configuration.
func Apply(cfg *config.Config) {
	Theme = build(map[string]string{
		"primary":  cfg.Theme.Primary,
		"success":  cfg.Theme.Success,
		"warning":  cfg.Theme.Warning,
		"error":    cfg.Theme.Error,
		"info":     cfg.Theme.Info,
		"emphasis": cfg.Theme.Emphasis,
		"border":   cfg.Theme.Border,
	})
}

func build(colors map[string]string) themeStyles {
	return themeStyles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors["primary"])).
			MarginBottom(1),
		Marked: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["success"])).
			Bold(true),
		Unmarked: lipgloss.NewStyle(),
		Dir: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["info"])).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["info"])),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["error"])).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["emphasis"])),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors["border"])).
			Padding(1, 2),
		ViewName: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors["emphasis"])),
	}
}
