// Package notify delivers accepted signals to a Telegram chat.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Breakout/models"
)

// sender is the part of *tgbotapi.BotAPI the notifier uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot    sender
	chatID int64
	logger zerolog.Logger
}

// NewTelegram connects to the bot API and checks the token
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	t := newTelegram(bot, chatID)
	t.logger.Info().Str("bot", bot.Self.UserName).Msg("Authorized on account")
	return t, nil
}

func newTelegram(bot sender, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram").Logger(),
	}
}

// NotifySignal posts the signal; size may be nil
func (t *Telegram) NotifySignal(sig models.Signal, size *models.PositionSizingResult) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatSignal(sig, size))
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error().Err(err).Str("symbol", sig.Symbol).Msg("Failed to send signal")
		return fmt.Errorf("sending %s signal: %w", sig.Symbol, err)
	}

	t.logger.Debug().Str("symbol", sig.Symbol).Str("id", sig.ID).Msg("Signal sent")
	return nil
}

// FormatSignal renders a signal as a plain-text message
func FormatSignal(sig models.Signal, size *models.PositionSizingResult) string {
	var b strings.Builder

	title := sig.Symbol
	if sig.Exchange != "" {
		title += " (" + sig.Exchange + ")"
	}
	fmt.Fprintf(&b, "🚀 %s breakout %s\n\n", sig.Direction, title)
	fmt.Fprintf(&b, "Entry: %.6f\n", sig.EntryPrice)
	fmt.Fprintf(&b, "Stop loss: %.6f (-%.2f%%)\n", sig.StopLoss, sig.StopLossPercent)
	fmt.Fprintf(&b, "Take profit: %.6f (+%.2f%%)\n", sig.TakeProfit, sig.TakeProfitPercent)
	fmt.Fprintf(&b, "Risk/reward: 1:%.1f\n\n", sig.RiskRewardRatio)

	fmt.Fprintf(&b, "Confidence: %.1f/10\n", sig.Confidence)
	fmt.Fprintf(&b, "Success probability: %.1f%%\n", sig.SuccessProbability)
	fmt.Fprintf(&b, "Profit potential: %s, risk: %s\n", sig.ProfitPotential, sig.RiskLevel)
	fmt.Fprintf(&b, "MTF score: %d (1H %d / 4H %d / 1D %d), alignment %d/6\n",
		sig.MTFScore, sig.TimeframeScores.Hourly, sig.TimeframeScores.FourHour, sig.TimeframeScores.Daily, sig.AlignmentScore)

	if size != nil {
		fmt.Fprintf(&b, "\nPosition: %.8f (%.2f, risking %.2f%% of account)\n", size.PositionSize, size.PositionValue, size.AccountRisk*100)
	}

	fmt.Fprintf(&b, "\nValid until %s UTC", sig.ExpiresAt.UTC().Format("2006-01-02 15:04"))
	return b.String()
}
