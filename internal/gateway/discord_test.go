package gateway

import (
	"strings"
	"testing"

	"github.com/AdamBeresnev/tourney-bot/internal/command"
	"github.com/AdamBeresnev/tourney-bot/internal/heartbeat"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		limit    int
		expected []string
	}{
		{name: "empty", content: "", limit: 10, expected: nil},
		{name: "fits", content: "3/8 slots filled.", limit: 2000, expected: []string{"3/8 slots filled."}},
		{name: "line boundaries", content: "aaaa\nbbbb\ncccc", limit: 10, expected: []string{"aaaa\nbbbb\n", "cccc"}},
		{name: "long line", content: strings.Repeat("x", 25), limit: 10, expected: []string{
			strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5),
		}},
		{name: "counts runes", content: "ééééé\nü", limit: 6, expected: []string{"ééééé\n", "ü"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := splitMessage(tc.content, tc.limit)
			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, tc.content, strings.Join(actual, ""))
		})
	}
}

func TestSplitLongTeamList(t *testing.T) {
	var b strings.Builder
	b.WriteString("Registered Teams:\n")
	for i := 0; i < 200; i++ {
		b.WriteString("- Some Rather Long Team Name: player one, player two\n")
	}

	chunks := splitMessage(b.String(), maxMessageLength)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), maxMessageLength)
		assert.True(t, strings.HasSuffix(c, "\n"), "chunks end on a line boundary")
	}
}

func TestToDiscordEmbed(t *testing.T) {
	embed := toDiscordEmbed(&command.Embed{
		Title: "Tournament Bot Commands",
		Color: 0x3498db,
		Fields: []command.EmbedField{
			{Name: "Admin Commands", Value: "`!reset`"},
			{Name: "User Commands", Value: "`!slots`", Inline: true},
		},
	})

	assert.Equal(t, "Tournament Bot Commands", embed.Title)
	assert.Equal(t, 0x3498db, embed.Color)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, &discordgo.MessageEmbedField{Name: "User Commands", Value: "`!slots`", Inline: true}, embed.Fields[1])
}

func TestFindChannels(t *testing.T) {
	guilds := []*discordgo.Guild{
		{Name: "one", Channels: []*discordgo.Channel{
			{ID: "1", Name: "botlogs", Type: discordgo.ChannelTypeGuildText},
			{ID: "2", Name: "botlogs", Type: discordgo.ChannelTypeGuildVoice},
			{ID: "3", Name: "general", Type: discordgo.ChannelTypeGuildText},
		}},
		{Name: "two", Channels: []*discordgo.Channel{
			{ID: "4", Name: "botlogs", Type: discordgo.ChannelTypeGuildText},
		}},
	}

	assert.Equal(t, []heartbeat.Channel{
		{ID: "1", Name: "botlogs", GuildName: "one"},
		{ID: "4", Name: "botlogs", GuildName: "two"},
	}, findChannels(guilds, "botlogs"))
	assert.Empty(t, findChannels(guilds, "missing"))
}

func TestMemberIsAdmin(t *testing.T) {
	state := discordgo.NewState()
	require.NoError(t, state.GuildAdd(&discordgo.Guild{
		ID:      "G1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "G1", Permissions: discordgo.PermissionSendMessages},
			{ID: "R-mod", Permissions: discordgo.PermissionManageMessages},
			{ID: "R-admin", Permissions: discordgo.PermissionAdministrator},
		},
		Channels: []*discordgo.Channel{
			{ID: "C1", GuildID: "G1", Name: "signups", Type: discordgo.ChannelTypeGuildText},
		},
	}))

	message := func(authorID string, roles ...string) *discordgo.Message {
		return &discordgo.Message{
			ChannelID: "C1",
			GuildID:   "G1",
			Author:    &discordgo.User{ID: authorID},
			Member:    &discordgo.Member{Roles: roles},
		}
	}

	testCases := []struct {
		name     string
		message  *discordgo.Message
		expected bool
	}{
		{name: "administrator role", message: message("U1", "R-admin"), expected: true},
		{name: "owner", message: message("owner"), expected: true},
		{name: "moderator", message: message("U2", "R-mod"), expected: false},
		{name: "no roles", message: message("U3"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			admin, err := memberIsAdmin(state, tc.message)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, admin)
		})
	}

	t.Run("member missing from event", func(t *testing.T) {
		_, err := memberIsAdmin(state, &discordgo.Message{ChannelID: "C1", Author: &discordgo.User{ID: "U1"}})
		assert.Error(t, err)
	})

	t.Run("channel not cached", func(t *testing.T) {
		m := message("U1", "R-admin")
		m.ChannelID = "C404"
		_, err := memberIsAdmin(state, m)
		assert.Error(t, err)
	})
}
