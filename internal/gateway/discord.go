package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/tourney-bot/internal/command"
	"github.com/AdamBeresnev/tourney-bot/internal/heartbeat"
	users "github.com/AdamBeresnev/tourney-bot/internal/user"
	"github.com/bwmarrin/discordgo"
)

const intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

// Bot connects the command dispatcher to a Discord gateway session.
type Bot struct {
	session    *discordgo.Session
	dispatcher *command.Dispatcher
	logger     *slog.Logger
	ready      *readiness
}

func New(token string, dispatcher *command.Dispatcher, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = intents

	b := &Bot{session: session, dispatcher: dispatcher, logger: logger, ready: newReadiness()}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

// Run keeps the gateway connection open until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	b.logger.InfoContext(ctx, "discord gateway connected")

	<-ctx.Done()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord gateway: %w", err)
	}
	b.logger.Info("discord gateway closed")
	return nil
}

// Ready is closed once the guild cache has been filled after the first login.
func (b *Bot) Ready() <-chan struct{} {
	return b.ready.Done()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("bot logged in", "user", r.User.String(), "guilds", len(r.Guilds))

	ids := make([]string, 0, len(r.Guilds))
	for _, g := range r.Guilds {
		ids = append(ids, g.ID)
	}
	b.ready.expect(ids)
	time.AfterFunc(guildWaitTimeout, b.ready.release)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.logger.Info("guild available", "guild_id", g.ID, "name", g.Name)
	b.ready.arrived(g.ID)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	b.logger.Debug("message received",
		"guild_id", m.GuildID, "channel_id", m.ChannelID, "author", m.Author.Username, "content", m.Content)

	inv, ok := command.Parse(b.dispatcher.Prefix(), m.Content)
	if !ok {
		return
	}
	inv.Caller = users.User{
		ID:      m.Author.ID,
		Name:    m.Author.Username,
		IsAdmin: b.isAdmin(m),
	}
	inv.ChannelID = m.ChannelID

	b.dispatcher.Handle(context.Background(), inv, b)
}

// isAdmin reports whether the author holds the Administrator permission in
// the channel. Direct messages never carry it.
func (b *Bot) isAdmin(m *discordgo.MessageCreate) bool {
	if m.GuildID == "" {
		return false
	}

	admin, err := memberIsAdmin(b.session.State, m.Message)
	if err == nil {
		return admin
	}
	b.logger.Debug("permissions not in state cache, asking the API", "channel_id", m.ChannelID, "error", err)

	perms, err := b.session.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		b.logger.Warn("could not resolve channel permissions", "user", m.Author.ID, "channel_id", m.ChannelID, "error", err)
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

// memberIsAdmin resolves permissions from the cached guild and the member
// that arrives with the message.
func memberIsAdmin(state *discordgo.State, m *discordgo.Message) (bool, error) {
	perms, err := state.MessagePermissions(m)
	if err != nil {
		return false, err
	}
	return perms&discordgo.PermissionAdministrator != 0, nil
}

// Send implements command.Sender.
func (b *Bot) Send(ctx context.Context, channelID string, reply command.Reply) error {
	if reply.Embed != nil {
		_, err := b.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content: reply.Content,
			Embeds:  []*discordgo.MessageEmbed{toDiscordEmbed(reply.Embed)},
		}, discordgo.WithContext(ctx))
		return err
	}

	for _, chunk := range splitMessage(reply.Content, maxMessageLength) {
		if err := b.SendText(ctx, channelID, chunk); err != nil {
			return err
		}
	}
	return nil
}

// SendText implements heartbeat.Gateway.
func (b *Bot) SendText(ctx context.Context, channelID, content string) error {
	_, err := b.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}

// ChannelsNamed implements heartbeat.Gateway using the session's guild cache.
func (b *Bot) ChannelsNamed(name string) []heartbeat.Channel {
	state := b.session.State
	state.RLock()
	defer state.RUnlock()

	return findChannels(state.Guilds, name)
}

func findChannels(guilds []*discordgo.Guild, name string) []heartbeat.Channel {
	var out []heartbeat.Channel
	for _, g := range guilds {
		for _, ch := range g.Channels {
			if ch.Name == name && ch.Type == discordgo.ChannelTypeGuildText {
				out = append(out, heartbeat.Channel{ID: ch.ID, Name: ch.Name, GuildName: g.Name})
			}
		}
	}
	return out
}

func toDiscordEmbed(e *command.Embed) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return &discordgo.MessageEmbed{
		Title:  e.Title,
		Color:  e.Color,
		Fields: fields,
	}
}
