// Package checkin implements the /checkin slash command. It builds the
// check-in embed reply for command submissions and serves location
// autocomplete backed by the Places suggestion client.
package checkin

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jkassel/checkin-bot-go/internal/bot"
	"github.com/jkassel/checkin-bot-go/internal/discordutil"
	"github.com/jkassel/checkin-bot-go/internal/geocode"
	"github.com/jkassel/checkin-bot-go/internal/logger"
)

// Module constants
const (
	ModuleName = "checkin" // Command name as registered with Discord

	// Command option names
	optionLocation = "location"
	optionMessage  = "message"
	optionPhoto    = "photo"

	// noMessagePlaceholder fills the message line of the embed when the
	// invoker supplied no message.
	noMessagePlaceholder = "*No message provided*"

	// maxPhotoEmbeds caps how many attachments become extra image embeds.
	// Extras are silently dropped.
	maxPhotoEmbeds = 4

	embedTitle = "📍 Check-In Complete!"
)

// usageText is the ephemeral reply for submissions without a location.
const usageText = "It looks like you didn't provide a location.\n\n" +
	"**Usage:** `/checkin location:<place> [message:<text>]`\n" +
	"For example: `/checkin location:\"Madison Square Garden\" message:\"Having a great time!\"`"

// Places provides location suggestions and static map URLs.
type Places interface {
	Suggest(ctx context.Context, input string) []string
	StaticMapURL(location string) string
}

// Responder delivers interaction responses through the callback URL,
// detached from the inbound request.
type Responder interface {
	RespondAsync(ctx context.Context, interactionID, interactionToken string, resp discordutil.Response)
}

// Handler handles /checkin submissions and location autocomplete.
type Handler struct {
	places    Places
	responder Responder
	logger    *logger.Logger
}

// NewHandler creates a new checkin handler with required dependencies.
func NewHandler(places Places, responder Responder, logger *logger.Logger) *Handler {
	return &Handler{
		places:    places,
		responder: responder,
		logger:    logger,
	}
}

// Name returns the module name
func (h *Handler) Name() string {
	return ModuleName
}

// Definition returns the /checkin application command payload. It lives at
// package level so the registration CLI can share the schema without
// constructing a handler.
func Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        ModuleName,
		Description: "Check in to a location, with optional custom message and photos!",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optionLocation,
				Description:  "Where are you?",
				Autocomplete: true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionMessage,
				Description: "Add a custom message",
			},
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        optionPhoto,
				Description: "Attach an image",
			},
		},
	}
}

// Definition returns the command schema used for registration.
func (h *Handler) Definition() *discordgo.ApplicationCommand {
	return Definition()
}

// Execute acknowledges a command submission and delivers the user-visible
// reply through the interaction callback URL. Submissions without a
// location get an ephemeral usage hint instead of the check-in embed.
func (h *Handler) Execute(ctx context.Context, inter *bot.Interaction) bot.Response {
	log := h.logger.WithModule(ModuleName).WithInteractionID(inter.ID)

	location := strings.TrimSpace(inter.OptionValue(optionLocation).OrElse(""))
	if location == "" {
		log.Debug("No location provided, sending usage hint")
		h.responder.RespondAsync(ctx, inter.ID, inter.Token, discordutil.EphemeralMessage(usageText))
		return bot.Empty(http.StatusOK)
	}

	displayName := inter.DisplayName()
	content := fmt.Sprintf("%s just checked in!", displayName)
	embeds := h.buildEmbeds(inter, location, displayName)

	log.WithField("location", location).Debugf("Delivering check-in for %s", displayName)
	h.responder.RespondAsync(ctx, inter.ID, inter.Token, discordutil.ChannelMessage(content, embeds...))

	return bot.Empty(http.StatusOK)
}

// buildEmbeds assembles the check-in embed plus up to maxPhotoEmbeds
// attachment images.
func (h *Handler) buildEmbeds(inter *bot.Interaction, location, displayName string) []*discordgo.MessageEmbed {
	message := inter.OptionValue(optionMessage).OrElse("")
	if message == "" {
		message = noMessagePlaceholder
	}

	description := fmt.Sprintf(
		"**Location**: %s\n**Message**: %s\n\n[View on Google Maps](%s)",
		location, message, geocode.SearchURL(location),
	)

	embed := discordutil.NewEmbed(embedTitle, description, discordutil.ColorPrimary)
	discordutil.SetImage(embed, h.places.StaticMapURL(location))
	discordutil.SetFooter(embed, fmt.Sprintf("Checked in by %s", displayName))

	photoURLs := inter.AttachmentURLs()
	if len(photoURLs) > maxPhotoEmbeds {
		photoURLs = photoURLs[:maxPhotoEmbeds]
	}

	embeds := make([]*discordgo.MessageEmbed, 0, 1+len(photoURLs))
	embeds = append(embeds, embed)
	for _, url := range photoURLs {
		embeds = append(embeds, discordutil.NewImageEmbed(url))
	}
	return embeds
}

// Autocomplete serves location suggestions for the option being typed.
// Failures inside the suggestion client surface as an empty choice list.
func (h *Handler) Autocomplete(ctx context.Context, inter *bot.Interaction) bot.Response {
	suggestions := h.places.Suggest(ctx, inter.FocusedValue())
	choices := discordutil.ChoicesFromStrings(suggestions)
	return bot.JSON(http.StatusOK, discordutil.AutocompleteResult(choices))
}
