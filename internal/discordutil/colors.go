package discordutil

// Discord Brand Colors
// Reference: https://discord.com/branding
//
// Embed colors are integers in 0xRRGGBB form. These follow Discord's official
// palette so embeds blend with the client UI in both themes.
const (
	ColorBlurple = 0x5865F2 // Primary brand color
	ColorGreen   = 0x57F287 // Success
	ColorYellow  = 0xFEE75C // Warning
	ColorFuchsia = 0xEB459E // Accent
	ColorRed     = 0xED4245 // Error, destructive actions
	ColorWhite   = 0xFFFFFF
	ColorBlack   = 0x000000

	// Semantic Colors - Use these for consistent meaning across the app
	ColorPrimary = ColorBlurple
	ColorSuccess = ColorGreen
	ColorDanger  = ColorRed
)
