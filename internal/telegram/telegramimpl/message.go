package telegramimpl

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/pkg/formatter"
)

const (
	tokenDecimals  = 18
	maxListedItems = 20
)

var errDisabled = errors.New("telegram notifications are disabled")

// SendMessage sends a message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	if tg.Bot == nil {
		return 0, errDisabled
	}
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.Bot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Info("Message sent",
		"chatID", chatID,
		"messageID", sentMsg.MessageID)
	return sentMsg.MessageID, nil
}

// SendMessageToOps sends a text message to the configured ops chat
func (tg *TelegramImpl) SendMessageToOps(msg string) {
	if tg.Bot == nil || tg.OpsID == 0 {
		tg.Logger.Debug("Skipping ops notification", "message", msg)
		return
	}
	_, _ = tg.SendMessage(tg.OpsID, msg)
}

// ReportOrphans lists post blobs that have no ledger record
func (tg *TelegramImpl) ReportOrphans(orphans []domain.OrphanBlob) {
	if len(orphans) == 0 {
		return
	}
	tg.SendMessageToOps(formatOrphans(orphans))
}

// AnnounceTip tells the ops chat about a token transfer picked up by the indexer
func (tg *TelegramImpl) AnnounceTip(tip domain.Tip, username string) {
	tg.SendMessageToOps(formatTip(tip, username))
}

func formatOrphans(orphans []domain.OrphanBlob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orphan sweep: %s post blobs without a ledger record\n", formatter.FormatNumber(len(orphans)))
	for i, o := range orphans {
		if i == maxListedItems {
			fmt.Fprintf(&b, "... and %d more", len(orphans)-maxListedItems)
			break
		}
		fmt.Fprintf(&b, "- %s/posts/%s\n", formatter.ShortAddress(o.Wallet), o.Filename)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTip(tip domain.Tip, username string) string {
	to := formatter.ShortAddress(tip.To)
	if username != "" {
		to = "@" + username + " (" + to + ")"
	}
	return fmt.Sprintf("Tip: %s sent %s tokens to %s (block %d)",
		formatter.ShortAddress(tip.From),
		formatter.FormatTokenAmount(tip.Amount, tokenDecimals),
		to,
		tip.BlockNumber,
	)
}
