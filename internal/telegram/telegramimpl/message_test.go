package telegramimpl

import (
	"errors"
	"math/big"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestDisabledClientIsNoop(t *testing.T) {
	tg := &TelegramImpl{Logger: logger.Nop()}

	tg.SendMessageToOps("hello")
	tg.ReportOrphans([]domain.OrphanBlob{{Wallet: "0x1", Filename: "a.png"}})

	_, err := tg.SendMessage(1, "x")
	require.ErrorIs(t, err, errDisabled)
}

func TestReportOrphans(t *testing.T) {
	sender := &fakeSender{}
	tg := &TelegramImpl{Bot: sender, OpsID: 42, Logger: logger.Nop()}

	tg.ReportOrphans(nil)
	require.Empty(t, sender.sent)

	tg.ReportOrphans([]domain.OrphanBlob{
		{Wallet: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1234", Filename: "a.png"},
	})
	require.Len(t, sender.sent, 1)
	require.EqualValues(t, 42, sender.sent[0].ChatID)
	require.Equal(t, "Orphan sweep: 1 post blobs without a ledger record\n- 0xaaaa...1234/posts/a.png", sender.sent[0].Text)
}

func TestFormatOrphansTruncates(t *testing.T) {
	orphans := make([]domain.OrphanBlob, maxListedItems+5)
	for i := range orphans {
		orphans[i] = domain.OrphanBlob{Wallet: "0xabc", Filename: "f.png"}
	}

	require.Contains(t, formatOrphans(orphans), "... and 5 more")
}

func TestFormatTip(t *testing.T) {
	amount, _ := new(big.Int).SetString("1500000000000000000", 10)
	tip := domain.Tip{
		From:        "0x1111111111111111111111111111111111111111",
		To:          "0x2222222222222222222222222222222222222222",
		Amount:      amount,
		BlockNumber: 9,
	}

	require.Equal(t, "Tip: 0x1111...1111 sent 1.5 tokens to @bob (0x2222...2222) (block 9)", formatTip(tip, "bob"))
	require.Equal(t, "Tip: 0x1111...1111 sent 1.5 tokens to 0x2222...2222 (block 9)", formatTip(tip, ""))
}

func TestSendErrorIsWrapped(t *testing.T) {
	tg := &TelegramImpl{Bot: &fakeSender{err: errors.New("boom")}, Logger: logger.Nop()}

	_, err := tg.SendMessage(1, "x")
	require.ErrorContains(t, err, "failed to send message")
}
