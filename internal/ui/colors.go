package ui

import (
	"os"
	"strings"
)

// Color codes for terminal output
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Underline = "\033[4m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Cyan    = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Theme defines the color scheme for different UI elements
type Theme struct {
	Success     string
	Warning     string
	Error       string
	Info        string
	Header      string
	Label       string
	Value       string
	Description string
}

// DefaultTheme returns the default color theme
func DefaultTheme() *Theme {
	return &Theme{
		Success:     BrightGreen,
		Warning:     BrightYellow,
		Error:       BrightRed,
		Info:        BrightCyan,
		Header:      Bold + Cyan,
		Label:       Bold,
		Value:       Reset,
		Description: Dim,
	}
}

// ColorConfig controls whether styling and emoji are emitted.
type ColorConfig struct {
	Enabled      bool
	EmojiEnabled bool
	Theme        *Theme
}

// NewColorConfig detects terminal capabilities and honors NO_COLOR.
func NewColorConfig() *ColorConfig {
	enabled := os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
	return &ColorConfig{
		Enabled:      enabled,
		EmojiEnabled: enabled,
		Theme:        DefaultTheme(),
	}
}

// Apply wraps s in the given color when styling is enabled.
func (c *ColorConfig) Apply(color, s string) string {
	if !c.Enabled {
		return s
	}
	return color + s + Reset
}

func (c *ColorConfig) Success(s string) string     { return c.Apply(c.Theme.Success, s) }
func (c *ColorConfig) Warning(s string) string     { return c.Apply(c.Theme.Warning, s) }
func (c *ColorConfig) Error(s string) string       { return c.Apply(c.Theme.Error, s) }
func (c *ColorConfig) Info(s string) string        { return c.Apply(c.Theme.Info, s) }
func (c *ColorConfig) Header(s string) string      { return c.Apply(c.Theme.Header, s) }
func (c *ColorConfig) Label(s string) string       { return c.Apply(c.Theme.Label, s) }
func (c *ColorConfig) Value(s string) string       { return c.Apply(c.Theme.Value, s) }
func (c *ColorConfig) Description(s string) string { return c.Apply(c.Theme.Description, s) }

// Separator returns a themed separator line of n characters.
func (c *ColorConfig) Separator(n int) string {
	return c.Description(strings.Repeat("─", n))
}
