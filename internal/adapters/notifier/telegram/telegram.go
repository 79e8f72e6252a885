package telegram

import (
	"net/http"
	"time"

	"github.com/Badsnus/cu-events/pkg/logger/types"
	tele "gopkg.in/telebot.v3"
)

type Config struct {
	Token   string
	URL     string
	Timeout time.Duration
}

// Sender pushes plain text messages to Telegram chats. It never polls for updates.
type Sender struct {
	bot    *tele.Bot
	logger *types.Logger
}

func New(cfg Config, logger *types.Logger) (*Sender, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	b, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		URL:     cfg.URL,
		Offline: true,
		Client:  &http.Client{Timeout: cfg.Timeout},
		OnError: func(err error, _ tele.Context) {
			logger.Errorf("telegram error: %v", err)
		},
	})
	if err != nil {
		return nil, err
	}

	return &Sender{
		bot:    b,
		logger: logger,
	}, nil
}

func (s *Sender) SendMessage(chatID int64, text string) error {
	_, err := s.bot.Send(tele.ChatID(chatID), text, &tele.SendOptions{
		DisableWebPagePreview: true,
	})
	return err
}
