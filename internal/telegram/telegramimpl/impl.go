package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/ledgergram/internal/telegram"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.uber.org/fx"
)

// Sender is the part of *tgbotapi.BotAPI the client uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	Bot    Sender
	OpsID  int64
	Logger logger.Logger
}

func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Telegram")
	impl := &TelegramImpl{
		OpsID:  opts.Config.Telegram.Chat,
		Logger: log,
	}
	if opts.Config.Telegram.Token == "" {
		log.Info("Telegram token not set, notifications disabled")
		return impl, nil
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}
	impl.Bot = bot
	return impl, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

var Module = fx.Provide(
	fx.Annotate(New, fx.As(new(telegram.Client))),
)
