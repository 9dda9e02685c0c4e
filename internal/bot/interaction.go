package bot

import (
	"encoding/json"
	"fmt"

	domerrors "github.com/jkassel/checkin-bot-go/internal/errors"
	"github.com/samber/mo"
)

// Kind identifies the interaction type of an inbound payload.
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object-interaction-type
type Kind int

const (
	// KindPing is the liveness check Discord sends to validate the endpoint.
	KindPing Kind = 1

	// KindCommand is a slash-command submission.
	KindCommand Kind = 2

	// KindAutocomplete is a keystroke event on an autocomplete-enabled option.
	KindAutocomplete Kind = 4
)

// String returns the label used for logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindPing:
		return "ping"
	case KindCommand:
		return "command"
	case KindAutocomplete:
		return "autocomplete"
	default:
		return "unknown"
	}
}

// Option is a single name/value pair supplied with a command invocation.
type Option struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Focused bool   `json:"focused,omitempty"`
}

// CommandData is the command-specific portion of an interaction payload.
type CommandData struct {
	Name    string   `json:"name"`
	Options []Option `json:"options,omitempty"`
}

// User identifies a Discord account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Member wraps the invoking user with guild-scoped fields.
type Member struct {
	Nick string `json:"nick,omitempty"`
	User User   `json:"user"`
}

// Attachment is a file uploaded alongside a command submission.
type Attachment struct {
	URL string `json:"url"`
}

// Interaction is a parsed inbound webhook payload. Command attachments
// arrive in a top-level array that discordgo's Interaction type does not
// model, so decoding uses these local wire types.
type Interaction struct {
	ID          string       `json:"id"`
	Kind        Kind         `json:"type"`
	Token       string       `json:"token"`
	Data        *CommandData `json:"data,omitempty"`
	Member      *Member      `json:"member,omitempty"`
	User        *User        `json:"user,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ParseInteraction decodes a verified webhook body. The returned error
// wraps ErrMalformedPayload when the JSON cannot be decoded or a command
// payload is missing fields required for its kind. Unrecognized kinds
// parse successfully and are rejected by the dispatcher instead.
func ParseInteraction(body []byte) (*Interaction, error) {
	var inter Interaction
	if err := json.Unmarshal(body, &inter); err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrMalformedPayload, err)
	}

	switch inter.Kind {
	case KindCommand, KindAutocomplete:
		if inter.ID == "" || inter.Token == "" {
			return nil, fmt.Errorf("%w: missing interaction id or token", domerrors.ErrMalformedPayload)
		}
		if inter.Data == nil || inter.Data.Name == "" {
			return nil, fmt.Errorf("%w: missing command data", domerrors.ErrMalformedPayload)
		}
	}

	return &inter, nil
}

// CommandName returns the invoked command name, or "" when the payload
// carries no command data.
func (i *Interaction) CommandName() string {
	if i.Data == nil {
		return ""
	}
	return i.Data.Name
}

// OptionValue looks up a command option by name. Option counts are small,
// so the scan is linear.
func (i *Interaction) OptionValue(name string) mo.Option[string] {
	if i.Data == nil {
		return mo.None[string]()
	}
	for _, opt := range i.Data.Options {
		if opt.Name == name {
			return mo.Some(opt.Value)
		}
	}
	return mo.None[string]()
}

// FocusedValue returns the value of the option the user is typing into,
// falling back to the first option when none is marked focused.
func (i *Interaction) FocusedValue() string {
	if i.Data == nil || len(i.Data.Options) == 0 {
		return ""
	}
	for _, opt := range i.Data.Options {
		if opt.Focused {
			return opt.Value
		}
	}
	return i.Data.Options[0].Value
}

// DisplayName returns the invoker's display name: the guild nickname when
// set, then the account username, then "Someone".
func (i *Interaction) DisplayName() string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User.Username != "" {
			return i.Member.User.Username
		}
	}
	if i.User != nil && i.User.Username != "" {
		return i.User.Username
	}
	return "Someone"
}

// UserID returns the invoking account id, or "" when the payload carries
// no user information.
func (i *Interaction) UserID() string {
	if i.Member != nil && i.Member.User.ID != "" {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// AttachmentURLs returns the uploaded attachment URLs in wire order.
func (i *Interaction) AttachmentURLs() []string {
	urls := make([]string, 0, len(i.Attachments))
	for _, att := range i.Attachments {
		if att.URL != "" {
			urls = append(urls, att.URL)
		}
	}
	return urls
}
