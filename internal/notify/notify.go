// Package notify sends operator notifications over Telegram. Notifications
// are best-effort and never block or fail the operation that triggered them.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/JIGGAI/ClawKitchen/internal/config"
)

const maxMessageLen = 4096

// Sender is the part of the Telegram client the notifier uses.
type Sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

type Notifier struct {
	sender Sender
	chatID int64
}

// New builds a notifier from config. When no token is configured it returns
// nil, and all methods on a nil notifier are no-ops.
func New(cfg config.TelegramConfig) (*Notifier, error) {
	if cfg.Token == "" {
		return nil, nil
	}
	bot, err := telego.NewBot(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Notifier{sender: bot, chatID: cfg.ChatID}, nil
}

// NewWithSender is used by tests to substitute the Telegram client.
func NewWithSender(s Sender, chatID int64) *Notifier {
	return &Notifier{sender: s, chatID: chatID}
}

// Notify delivers a message to the operator chat, chunked per the Telegram
// size limit. Failures are logged, not returned.
func (n *Notifier) Notify(ctx context.Context, text string) {
	if n == nil || text == "" {
		return
	}
	for _, chunk := range chunkMessage(text, maxMessageLen) {
		msg := tu.Message(tu.ID(n.chatID), chunk)
		if _, err := n.sender.SendMessage(ctx, msg); err != nil {
			slog.Error("failed to send telegram notification", "chat", n.chatID, "error", err)
			return
		}
	}
}

// ScaffoldCompleted reports a finished scaffold run.
func (n *Notifier) ScaffoldCompleted(ctx context.Context, kind, recipeID, target string, ok bool) {
	status := "succeeded"
	if !ok {
		status = "failed"
	}
	n.Notify(ctx, fmt.Sprintf("Scaffold %s: %s recipe %q for %q", status, kind, recipeID, target))
}

// GoalPromoted reports a goal handed to the team inbox.
func (n *Notifier) GoalPromoted(ctx context.Context, goalID, teamID string, pinged bool) {
	text := fmt.Sprintf("Goal %q promoted to team %q", goalID, teamID)
	if pinged {
		text += " (lead agent pinged)"
	}
	n.Notify(ctx, text)
}
