// Package discordutil provides helpers for building Discord interaction
// responses and message embeds within API limits.
package discordutil

import (
	"github.com/bwmarrin/discordgo"
)

// Response is the JSON envelope for an interaction response. The payload
// shape depends on the response type, so Data is either a *MessageData or a
// *AutocompleteData.
type Response struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data any                               `json:"data,omitempty"`
}

// MessageData is the payload of a message response.
type MessageData struct {
	Content string                    `json:"content,omitempty"`
	Embeds  []*discordgo.MessageEmbed `json:"embeds,omitempty"`
	Flags   discordgo.MessageFlags    `json:"flags,omitempty"`
}

// AutocompleteData is the payload of an autocomplete response. Choices is
// always serialized, even when empty, so the client clears stale menus.
type AutocompleteData struct {
	Choices []*discordgo.ApplicationCommandOptionChoice `json:"choices"`
}

// Pong acknowledges a ping interaction.
func Pong() Response {
	return Response{Type: discordgo.InteractionResponsePong}
}

// ChannelMessage builds a visible message response with optional embeds.
// Content is truncated to the API limit, embeds beyond the per-message cap
// are dropped.
func ChannelMessage(content string, embeds ...*discordgo.MessageEmbed) Response {
	if len(embeds) > MaxEmbedsPerMessage {
		embeds = embeds[:MaxEmbedsPerMessage]
	}
	return Response{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &MessageData{
			Content: TruncateRunes(content, MaxContentLength),
			Embeds:  embeds,
		},
	}
}

// EphemeralMessage builds a message response only the invoking user can see.
func EphemeralMessage(content string) Response {
	return Response{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &MessageData{
			Content: TruncateRunes(content, MaxContentLength),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// AutocompleteResult builds an autocomplete response from the given choices.
// Choices beyond the API cap are dropped and a nil slice becomes an empty
// one.
func AutocompleteResult(choices []*discordgo.ApplicationCommandOptionChoice) Response {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	if len(choices) > MaxAutocompleteChoices {
		choices = choices[:MaxAutocompleteChoices]
	}
	return Response{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &AutocompleteData{Choices: choices},
	}
}

// ChoicesFromStrings builds autocomplete choices whose name and value are
// the same string, truncated to the choice length limit.
func ChoicesFromStrings(values []string) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		name := TruncateRunes(value, MaxChoiceNameLength)
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}
	return choices
}
