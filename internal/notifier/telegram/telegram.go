// Package telegram posts announcements through each organizer's own bot.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/settings"
)

const channelName = "telegram"

// Bot is the part of tgbotapi.BotAPI we use.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// BotFactory creates a bot for a token.
type BotFactory func(token string) (Bot, error)

func newBotAPI(token string) (Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return bot, nil
}

var _ notifier.Sender = (*Sender)(nil)

// Sender delivers announcements to Telegram. Bots are created lazily and
// cached per token.
type Sender struct {
	newBot  BotFactory
	loc     *time.Location
	metrics metrics.Metrics

	mu   sync.Mutex
	bots map[string]Bot
}

// NewSender creates a Sender that talks to the Telegram Bot API. Dates are
// rendered in loc.
func NewSender(loc *time.Location, m metrics.Metrics) *Sender {
	return NewSenderWithFactory(newBotAPI, loc, m)
}

// NewSenderWithFactory is NewSender with a custom bot constructor, for tests.
func NewSenderWithFactory(factory BotFactory, loc *time.Location, m metrics.Metrics) *Sender {
	if loc == nil {
		loc = time.UTC
	}
	return &Sender{
		newBot:  factory,
		loc:     loc,
		metrics: m,
		bots:    make(map[string]Bot),
	}
}

func (s *Sender) Name() string {
	return channelName
}

func (s *Sender) Configured(cfg settings.Settings) bool {
	return cfg.TelegramConfigured()
}

func (s *Sender) Send(ctx context.Context, cfg settings.Settings, a *notifier.Announcement, dryRun bool) error {
	text := Format(a, s.loc)
	msg := newMessage(cfg.TelegramChatID, text)

	if dryRun {
		log.Info("[Dry Run] Would send Telegram message", "chat", cfg.TelegramChatID, "message", text)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	bot, err := s.bot(cfg.TelegramBotToken)
	if err != nil {
		s.metrics.IncNotifFailed(channelName)
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}
	sent, err := bot.Send(msg)
	if err != nil {
		s.metrics.IncNotifFailed(channelName)
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	s.metrics.IncNotifSent(channelName)
	log.Info("Successfully sent Telegram message", "chat", cfg.TelegramChatID, "message_id", sent.MessageID)
	return nil
}

func (s *Sender) bot(token string) (Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bot, ok := s.bots[token]; ok {
		return bot, nil
	}
	bot, err := s.newBot(token)
	if err != nil {
		return nil, err
	}
	s.bots[token] = bot
	return bot, nil
}

// newMessage addresses numeric chat ids directly and anything else as a
// channel username.
func newMessage(chatID, text string) tgbotapi.MessageConfig {
	var msg tgbotapi.MessageConfig
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else {
		msg = tgbotapi.NewMessageToChannel(chatID, text)
	}
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	return msg
}

const dateLayout = "02.01.2006 15:04"

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// Format renders a as a Telegram Markdown message.
func Format(a *notifier.Announcement, loc *time.Location) string {
	if a.IsResult() {
		return formatResult(a, loc)
	}
	return formatPlanned(a, loc)
}

func formatPlanned(a *notifier.Announcement, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("📢 *MATCH PLANNED!* 📢\n\n")
	fmt.Fprintf(&b, "📅 *Date:* %s\n", a.Date.In(loc).Format(dateLayout))
	fmt.Fprintf(&b, "📍 *Location:* %s\n\n", location(a))
	b.WriteString("🔴 *TEAM A*\n")
	writeTeam(&b, a.TeamA)
	b.WriteString("\n🔵 *TEAM B*\n")
	writeTeam(&b, a.TeamB)
	if a.Prediction != "" {
		fmt.Fprintf(&b, "\n🧠 *Prediction:*\n_%s_\n", escape(a.Prediction))
	}
	b.WriteString("\n✅ _Everyone please be there on time!_")
	return b.String()
}

func formatResult(a *notifier.Announcement, loc *time.Location) string {
	scoreA, scoreB := *a.ScoreA, *a.ScoreB

	var winner string
	switch {
	case scoreA > scoreB:
		winner = "🔴 TEAM A WON!"
	case scoreB > scoreA:
		winner = "🔵 TEAM B WON!"
	default:
		winner = "🤝 FRIENDSHIP WON (DRAW)"
	}

	mvp := a.MVP
	if mvp == "" {
		mvp = "Not chosen"
	}

	var b strings.Builder
	b.WriteString("🏁 *FULL TIME!* 🏁\n\n")
	fmt.Fprintf(&b, "🏟️ *Location:* %s\n", location(a))
	fmt.Fprintf(&b, "📅 *Date:* %s\n\n", a.Date.In(loc).Format(dateLayout))
	b.WriteString("🔢 *SCORE*\n")
	fmt.Fprintf(&b, "🟥 *Team A:* %d\n", scoreA)
	fmt.Fprintf(&b, "🟦 *Team B:* %d\n\n", scoreB)
	fmt.Fprintf(&b, "🏆 *RESULT:* %s\n\n", winner)
	fmt.Fprintf(&b, "🌟 *Player of the Match (MVP):* %s", escape(mvp))
	if a.Prediction != "" {
		fmt.Fprintf(&b, "\n\n🧠 *What did the prediction say?*\n_%s_", escape(a.Prediction))
	}
	return b.String()
}

func location(a *notifier.Announcement) string {
	if a.Location == "" {
		return "Not specified"
	}
	return escape(a.Location)
}

func writeTeam(b *strings.Builder, team []balancer.Player) {
	if len(team) == 0 {
		b.WriteString("-\n")
		return
	}
	for _, p := range team {
		fmt.Fprintf(b, "• %s (%s)\n", escape(p.Name), p.Position)
	}
}
