// Package main registers the application's slash commands with Discord.
//
// Credentials come from flags, falling back to the environment variables the
// server reads. Passing a guild ID scopes registration to that guild, which
// propagates immediately and suits development; global registration can take
// up to an hour to roll out.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/jkassel/checkin-bot-go/internal/config"
	"github.com/jkassel/checkin-bot-go/internal/discord"
	"github.com/jkassel/checkin-bot-go/internal/logger"
	"github.com/jkassel/checkin-bot-go/internal/modules/checkin"
	"github.com/jkassel/checkin-bot-go/internal/stringutil"
)

func main() {
	var (
		botToken = flag.String("token", os.Getenv(config.EnvDiscordBotToken),
			"bot token (defaults to "+config.EnvDiscordBotToken+")")
		appID = flag.String("app-id", os.Getenv(config.EnvDiscordAppID),
			"application ID (defaults to "+config.EnvDiscordAppID+")")
		guildID = flag.String("guild", "",
			"guild ID for guild-scoped registration (empty registers globally)")
	)
	flag.Parse()

	if *botToken == "" || *appID == "" {
		_, _ = fmt.Fprintln(os.Stderr, "bot token and application ID are required")
		flag.Usage()
		os.Exit(2)
	}
	if !stringutil.IsNumeric(*appID) {
		_, _ = fmt.Fprintf(os.Stderr, "application ID %q is not a snowflake\n", *appID)
		os.Exit(2)
	}
	if *guildID != "" && !stringutil.IsNumeric(*guildID) {
		_, _ = fmt.Fprintf(os.Stderr, "guild ID %q is not a snowflake\n", *guildID)
		os.Exit(2)
	}

	log := logger.New("info")

	client, err := discord.NewClient(discord.Config{
		BotToken: *botToken,
		AppID:    *appID,
		Logger:   log,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create Discord client")
		os.Exit(1)
	}

	commands := []*discordgo.ApplicationCommand{checkin.Definition()}

	ctx, cancel := context.WithTimeout(context.Background(), config.CommandRegistrationTimeout)
	defer cancel()

	created, err := client.RegisterCommands(ctx, *guildID, commands)
	if err != nil {
		log.WithError(err).Error("Command registration failed")
		os.Exit(1)
	}

	for _, cmd := range created {
		log.WithField("command", cmd.Name).WithField("id", cmd.ID).Info("Command registered")
	}

	scope := "global"
	if *guildID != "" {
		scope = "guild:" + *guildID
	}
	log.WithField("count", len(created)).WithField("scope", scope).Info("Command registration complete")
}
