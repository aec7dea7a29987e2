package heartbeat

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Channel is a text channel reachable through the gateway.
type Channel struct {
	ID        string
	Name      string
	GuildName string
}

type Gateway interface {
	ChannelsNamed(name string) []Channel
	SendText(ctx context.Context, channelID, content string) error
}

// Task posts a liveness message into every channel with a given name.
type Task struct {
	gateway  Gateway
	channel  string
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func New(gateway Gateway, channel string, interval time.Duration, logger *slog.Logger) *Task {
	return &Task{
		gateway:  gateway,
		channel:  channel,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func Message(at time.Time) string {
	return fmt.Sprintf("🤖 Bot is alive! Heartbeat at %s", at.Format(timestampLayout))
}

// Beat sends one heartbeat and returns how many channels received it.
func (t *Task) Beat(ctx context.Context) int {
	msg := Message(t.now())
	sent := 0
	for _, ch := range t.gateway.ChannelsNamed(t.channel) {
		if err := t.gateway.SendText(ctx, ch.ID, msg); err != nil {
			t.logger.ErrorContext(ctx, "heartbeat failed", "guild", ch.GuildName, "channel", ch.Name, "error", err)
			continue
		}
		t.logger.DebugContext(ctx, "heartbeat sent", "guild", ch.GuildName, "channel", ch.Name)
		sent++
	}
	return sent
}

// RunWhenReady waits for ready to close before calling Run, so the first beat
// sees a populated channel cache.
func (t *Task) RunWhenReady(ctx context.Context, ready <-chan struct{}) error {
	select {
	case <-ctx.Done():
		return nil
	case <-ready:
	}
	return t.Run(ctx)
}

// Run beats once immediately and then on every tick until ctx is cancelled.
func (t *Task) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	t.logger.InfoContext(ctx, "heartbeat started", "channel", t.channel, "interval", t.interval)

	t.Beat(ctx)
	for {
		select {
		case <-ctx.Done():
			t.logger.InfoContext(ctx, "heartbeat stopped")
			return nil
		case <-ticker.C:
			t.Beat(ctx)
		}
	}
}
