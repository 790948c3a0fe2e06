package tui

// Color constants for the tride TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#2A1F0E" // Dark amber-brown
	ColorBorder         = "#4A4336" // Warm grey

	// Text Colors
	ColorPrimaryText   = "#F2EDE4" // Primary text (labels, user input, task names)
	ColorSecondaryText = "#C2B9A8" // Secondary text - warm sand grey
	ColorDisabledText  = "#7D7668" // Disabled/muted text
	ColorPlaceholder   = "#C2B9A8" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Amber theme)
	ColorAccentMain   = "#D97706" // Logo, accent elements, active borders
	ColorAccentBright = "#FBBF24" // Highlights, running timers, active filters

	// State Colors
	ColorError   = "#EF4444" // Errors
	ColorSuccess = "#22C55E" // Success, closed sessions
	ColorWarning = "#F59E0B" // Warnings, open sessions elsewhere
)
