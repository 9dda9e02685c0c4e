// Package bot models inbound Discord interactions and routes them through
// a registry of slash-command handlers. Each command module implements the
// Command interface to serve submissions and autocomplete keystrokes.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Command defines the interface that all slash-command modules must implement.
type Command interface {
	// Name returns the command name as invoked by users, without the slash.
	Name() string

	// Definition returns the application command payload used when
	// registering the command with Discord.
	Definition() *discordgo.ApplicationCommand

	// Execute handles a command submission and returns the synchronous
	// acknowledgment. The user-visible reply is delivered out-of-band
	// through the interaction callback URL.
	Execute(ctx context.Context, inter *Interaction) Response

	// Autocomplete returns the choice list for the option being typed.
	Autocomplete(ctx context.Context, inter *Interaction) Response
}

// Registry manages command modules and resolves them by name.
type Registry struct {
	commands []Command
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make([]Command, 0),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// Get returns the command registered under name, or nil.
func (r *Registry) Get(name string) Command {
	for _, cmd := range r.commands {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

// Definitions returns the registration payloads of all commands in
// registration order.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, cmd := range r.commands {
		defs = append(defs, cmd.Definition())
	}
	return defs
}
