package telegram

import (
	"github.com/orgball2608/ledgergram/internal/domain"
)

// Client delivers operator notifications. Without a bot token every call is a no-op.
type Client interface {
	SendMessage(chatID int64, text string) (int, error)

	SendMessageToOps(msg string)
	ReportOrphans(orphans []domain.OrphanBlob)
	AnnounceTip(tip domain.Tip, username string)
}
