// Package ui layout constants for consistent spacing and dimensions.
package ui

// Layout constants for panel sizing.
const (
	HeaderHeight    = 1
	FooterHeight    = 2
	StatusBarHeight = 1

	SidebarWidth  = 20
	ContentIndent = 2

	// Search dropdown
	MaxSearchResults = 8

	// Entry grid column widths
	ItemColWidth     = 34
	QtyColWidth      = 6
	PriceColWidth    = 10
	DiscountColWidth = 8
	TotalColWidth    = 12

	// Responsive breakpoints
	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
	CompactModeWidth      = 100
)

// LayoutConfig provides computed dimensions for the current terminal.
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given size.
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth is the width left of the sidebar for page content.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - SidebarWidth - ContentIndent
	if l.IsCompact {
		w = l.TerminalWidth - ContentIndent
	}
	if w < 1 {
		return 1
	}
	return w
}

// ContentHeight is the height between header and footer.
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - HeaderHeight - FooterHeight - StatusBarHeight
	if h < 1 {
		return 1
	}
	return h
}
