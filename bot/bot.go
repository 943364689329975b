// Package bot runs the gateway side of the dashboard: a single static command.
package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	PingCommand = "!ping"
	PingReply   = "Pong!"
)

// Intents the bot identifies with.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildVoiceStates

// ReplyFor returns the reply to content, if any. Messages written by selfID
// are never answered.
func ReplyFor(selfID, authorID, content string) (string, bool) {
	if authorID != "" && authorID == selfID {
		return "", false
	}
	if content == PingCommand {
		return PingReply, true
	}
	return "", false
}

// Replier sends a reply to a message.
type Replier interface {
	ChannelMessageSendReply(channelID, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Handler answers message-create events.
type Handler struct {
	selfID func() string
}

// NewHandler builds a handler; selfID reports the bot's own user id once ready.
func NewHandler(selfID func() string) *Handler {
	return &Handler{selfID: selfID}
}

// Handle replies to m through r when it carries a known command.
func (h *Handler) Handle(r Replier, m *discordgo.Message) error {
	if m == nil || m.Author == nil {
		return nil
	}
	reply, ok := ReplyFor(h.selfID(), m.Author.ID, m.Content)
	if !ok {
		return nil
	}
	if _, err := r.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
		return errors.Wrapf(err, "reply in channel %s", m.ChannelID)
	}
	return nil
}

// Bot owns the gateway session.
type Bot struct {
	session *discordgo.Session
	handler *Handler
}

// New prepares a session for token without connecting.
func New(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "create discord session")
	}
	session.Identify.Intents = Intents

	b := &Bot{session: session}
	b.handler = NewHandler(b.selfID)

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", r.User.String()).Msg("bot logged in")
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if err := b.handler.Handle(s, m.Message); err != nil {
			log.Err(err).Msg("failed to handle message")
		}
	})
	return b, nil
}

func (b *Bot) selfID() string {
	if b.session.State == nil || b.session.State.User == nil {
		return ""
	}
	return b.session.State.User.ID
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	return errors.Wrap(b.session.Open(), "open gateway")
}

func (b *Bot) Close() error {
	return b.session.Close()
}
