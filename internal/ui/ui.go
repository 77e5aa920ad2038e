// Package ui provides terminal output styling for the vitals CLI.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colors returns true if colored output should be enabled.
// Respects NO_COLOR env var and --no-color flag.
func Colors(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

// IsTerminal checks if output is going to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StatusIndicator renders status indicators with color.
type StatusIndicator string

const (
	StatusSuccess StatusIndicator = "success"
	StatusError   StatusIndicator = "error"
	StatusWarning StatusIndicator = "warning"
)

// RenderStatus renders a status indicator with appropriate styling.
func RenderStatus(status StatusIndicator, noColor bool, useUnicode bool) string {
	if noColor {
		switch status {
		case StatusSuccess:
			return "[OK]"
		case StatusError:
			return "[ERR]"
		case StatusWarning:
			return "[WARN]"
		default:
			return "[-]"
		}
	}

	var symbol, color string
	if useUnicode {
		switch status {
		case StatusSuccess:
			symbol, color = "✓", "10" // Green
		case StatusError:
			symbol, color = "✗", "9" // Red
		case StatusWarning:
			symbol, color = "⚠", "11" // Yellow
		default:
			symbol, color = "•", "15" // White
		}
	} else {
		switch status {
		case StatusSuccess:
			symbol, color = "✓", "10"
		case StatusError:
			symbol, color = "X", "9"
		case StatusWarning:
			symbol, color = "!", "11"
		default:
			symbol, color = "-", "15"
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	return style.Render(symbol)
}

// RenderVerdict renders the overall HEALTHY/UNHEALTHY verdict word.
func RenderVerdict(healthy bool, noColor bool) string {
	word := "HEALTHY"
	color := "10"
	if !healthy {
		word = "UNHEALTHY"
		color = "9"
	}

	if noColor {
		return word
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	return style.Render(word)
}

// FormatUptime renders an uptime in seconds as a compact duration, e.g.
// "14d6h", "3h17m", "42m".
func FormatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd%dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
