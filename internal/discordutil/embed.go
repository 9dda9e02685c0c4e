package discordutil

import (
	"github.com/bwmarrin/discordgo"
)

// NewEmbed creates a message embed with title, description, and color.
// Title and description are truncated to their API limits.
func NewEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       TruncateRunes(title, MaxEmbedTitleLength),
		Description: TruncateRunes(description, MaxEmbedDescriptionLength),
		Color:       color,
	}
}

// NewImageEmbed creates an embed that only displays an image.
func NewImageEmbed(imageURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Image: &discordgo.MessageEmbedImage{URL: imageURL},
	}
}

// SetImage sets the embed image. Returns the same embed for chaining.
func SetImage(embed *discordgo.MessageEmbed, imageURL string) *discordgo.MessageEmbed {
	if imageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}
	return embed
}

// SetFooter sets the embed footer text, truncated to the API limit.
// Returns the same embed for chaining.
func SetFooter(embed *discordgo.MessageEmbed, text string) *discordgo.MessageEmbed {
	if text != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: TruncateRunes(text, MaxEmbedFooterLength),
		}
	}
	return embed
}

// TruncateRunes truncates text by rune count (not byte count) to properly
// handle UTF-8. Returns truncated string with "..." if it exceeds maxRunes.
func TruncateRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
