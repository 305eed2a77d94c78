// Package ui holds the color themes shared by the CLI and the dashboard:
// ANSI escape codes for line output and lipgloss colors for the TUI.
// NO_COLOR and -no-color select a theme without any escape codes.
package ui
