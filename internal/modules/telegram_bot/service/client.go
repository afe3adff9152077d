package service

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lp_bot/internal/exchange"
	"lp_bot/internal/modules/config"
	"lp_bot/internal/positions"
	"lp_bot/internal/runner"
	"lp_bot/internal/scanner"
	"lp_bot/internal/settings"
	"lp_bot/pkg/logger"
)

// Telegram messages are capped at 4096 chars; stay well under so HTML
// tags never get split.
const maxMessageLen = 3500

type Telegram struct {
	bot     *tgbot.BotAPI
	cfg     *config.Config
	book    *positions.Book
	st      *settings.Store
	manager *runner.Manager
	gamma   *exchange.Gamma
	data    *exchange.Data
	scanner *scanner.Scanner
	snap    *runner.Snapshotter
	await   *awaitStore
}

func NewTelegram(
	cfg *config.Config,
	book *positions.Book,
	st *settings.Store,
	manager *runner.Manager,
	gamma *exchange.Gamma,
	data *exchange.Data,
	sc *scanner.Scanner,
	snap *runner.Snapshotter,
) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:     b,
		cfg:     cfg,
		book:    book,
		st:      st,
		manager: manager,
		gamma:   gamma,
		data:    data,
		scanner: sc,
		snap:    snap,
		await:   newAwaitStore(),
	}, nil
}

// Send implements notify.Notifier against the configured owner chat.
func (t *Telegram) Send(_ context.Context, msg string) error {
	return t.sendTo(t.cfg.Telegram.ChatID, msg, "")
}

func (t *Telegram) Sendf(ctx context.Context, format string, args ...any) error {
	return t.Send(ctx, fmt.Sprintf(format, args...))
}

func (t *Telegram) SendHTML(_ context.Context, html string) error {
	return t.sendTo(t.cfg.Telegram.ChatID, html, tgbot.ModeHTML)
}

func (t *Telegram) sendTo(chatID int64, text, parseMode string) error {
	if chatID == 0 {
		return nil
	}
	for _, chunk := range splitMessage(text, maxMessageLen) {
		msg := tgbot.NewMessage(chatID, chunk)
		msg.ParseMode = parseMode
		msg.DisableWebPagePreview = true
		if _, err := t.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

func (t *Telegram) reply(chatID int64, text string) {
	if err := t.sendTo(chatID, text, ""); err != nil {
		logger.Error("telegram send: %v", err)
	}
}

func (t *Telegram) replyHTML(chatID int64, html string) {
	if err := t.sendTo(chatID, html, tgbot.ModeHTML); err != nil {
		logger.Error("telegram send html: %v", err)
	}
}

// Start consumes the update channel until it closes.
func (t *Telegram) Start(ctx context.Context) error {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)
	logger.Info("telegram bot @%s listening", t.bot.Self.UserName)
	for update := range updates {
		t.handleUpdate(ctx, update)
	}
	return nil
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}
