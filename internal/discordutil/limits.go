package discordutil

// Discord API limits (rune count unless noted)
// Reference: https://discord.com/developers/docs/resources/message
const (
	MaxContentLength = 2000 // Message content length

	// Embed Limits
	MaxEmbedTitleLength       = 256  // Embed title
	MaxEmbedDescriptionLength = 4096 // Embed description
	MaxEmbedFooterLength      = 2048 // Embed footer text
	MaxEmbedFieldCount        = 25   // Fields per embed
	MaxEmbedsPerMessage       = 10   // Embeds per message
	MaxEmbedTotalLength       = 6000 // Combined text across all embeds in a message

	// Autocomplete Limits
	MaxAutocompleteChoices = 25  // Choices per autocomplete response
	MaxChoiceNameLength    = 100 // Choice name and string value length
)
