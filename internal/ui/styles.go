package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// ═══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Ink on manuscript paper
// ═══════════════════════════════════════════════════════════════════════════════

var (
	Ink       = lipgloss.Color("#2C3E50") // Sumi ink
	Vermilion = lipgloss.Color("#E74C3C") // Seal red
	Indigo    = lipgloss.Color("#5D6DBE") // Aizome
	Matcha    = lipgloss.Color("#58D68D") // Fresh green
	Amber     = lipgloss.Color("#E59866") // Warm amber
	Gold      = lipgloss.Color("#F4D03F") // Highlight gold
	Paper     = lipgloss.Color("#FAE5D3") // Manuscript paper

	Gray     = lipgloss.Color("#AAB7B8")
	DarkGray = lipgloss.Color("#5D6D7E")
)

// ═══════════════════════════════════════════════════════════════════════════════
// TEXT STYLES
// ═══════════════════════════════════════════════════════════════════════════════

var (
	// Title for headings
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Gold)

	// Success messages
	Success = lipgloss.NewStyle().
		Foreground(Matcha)

	// Error messages
	Error = lipgloss.NewStyle().
		Foreground(Vermilion).
		Bold(true)

	// Warning messages
	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	// Info messages
	Info = lipgloss.NewStyle().
		Foreground(Indigo)

	// Muted/secondary text
	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	// Dim - even more subtle
	Dim = lipgloss.NewStyle().
		Foreground(DarkGray)

	// Highlight for important items
	Highlight = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	// Path style for file locations
	Path = lipgloss.NewStyle().
		Foreground(Paper).
		Underline(true)

	// Selected marks the pre-selected part of a prompt value
	Selected = lipgloss.NewStyle().
			Foreground(Ink).
			Background(Gold)
)

// ═══════════════════════════════════════════════════════════════════════════════
// STATUS LINE COMPONENTS
// ═══════════════════════════════════════════════════════════════════════════════

// StatusLine creates a status line with icon and message
func StatusLine(icon, message string, style lipgloss.Style) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	return fmt.Sprintf("  %s %s", style.Render(icon), style.Render(message))
}

// SuccessLine creates a success status line
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Success)
}

// ErrorLine creates an error status line
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Error)
}

// WarningLine creates a warning status line
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Warning)
}

// InfoLine creates an info status line
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, Info)
}

// Heading renders a section title followed by a divider.
func Heading(text string) string {
	return "  " + Render(Title, text) + "\n" + Divider()
}

// KeyValue renders an aligned "key  value" line for listings.
func KeyValue(key, value string, width int) string {
	label := fmt.Sprintf("  %-*s", width, key)
	if value == "" {
		value = "(none)"
		return Render(Muted, label) + "  " + Render(Dim, value)
	}
	return Render(Muted, label) + "  " + RenderPath(value)
}

// ═══════════════════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════════════════

// Render applies a lipgloss style to text, returning plain text in non-TTY environments.
// Use this wrapper when you want TTY-aware styling.
func Render(style lipgloss.Style, text string) string {
	if !IsTTY {
		return text
	}
	return style.Render(text)
}

// RenderMuted renders text in muted style (TTY-aware)
func RenderMuted(text string) string {
	return Render(Muted, text)
}

// RenderDim renders text in dim style (TTY-aware)
func RenderDim(text string) string {
	return Render(Dim, text)
}

// RenderHighlight renders text in highlight style (TTY-aware)
func RenderHighlight(text string) string {
	return Render(Highlight, text)
}

// RenderPath renders a file path (TTY-aware)
func RenderPath(text string) string {
	return Render(Path, text)
}

// TerminalWidth returns the current terminal width, defaulting to 80 if unknown
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// Divider returns a horizontal divider capped at 80 columns
func Divider() string {
	width := TerminalWidth()
	if width > 80 {
		width = 80
	}
	return Render(Dim, strings.Repeat("─", width))
}
