package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/settings"
	"github.com/slack-go/slack"
)

const channelName = "slack"

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Sender = &Sender{}

// Sender posts announcements to Slack with the server-wide bot.
type Sender struct {
	api            slackClient
	defaultChannel string
	loc            *time.Location
	metrics        metrics.Metrics
}

// NewSender creates a new Sender. defaultChannel is used for organizers who
// did not pick a channel. An empty token disables the sender.
func NewSender(token, defaultChannel string, loc *time.Location, metrics metrics.Metrics) *Sender {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return NewSenderWithAPI(api, defaultChannel, loc, metrics)
}

// NewSenderWithAPI creates a new Sender with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewSenderWithAPI(api slackClient, defaultChannel string, loc *time.Location, metrics metrics.Metrics) *Sender {
	if loc == nil {
		loc = time.UTC
	}
	return &Sender{
		api:            api,
		defaultChannel: defaultChannel,
		loc:            loc,
		metrics:        metrics,
	}
}

func (s *Sender) Name() string {
	return channelName
}

func (s *Sender) Configured(cfg settings.Settings) bool {
	return s.api != nil && s.channel(cfg) != ""
}

func (s *Sender) Send(ctx context.Context, cfg settings.Settings, a *notifier.Announcement, dryRun bool) error {
	var msg slack.Message
	if a.IsResult() {
		msg = s.formatResultNotification(a)
	} else {
		msg = s.formatPlannedNotification(a)
	}
	_, _, err := s.sendMessage(ctx, s.channel(cfg), msg, dryRun)
	return err
}

func (s *Sender) channel(cfg settings.Settings) string {
	if cfg.SlackChannelID != "" {
		return cfg.SlackChannelID
	}
	return s.defaultChannel
}

func (s *Sender) sendMessage(ctx context.Context, channelID string, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}
	if s.api == nil {
		return "", "", errors.New("slack is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channel, timestamp, err := s.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed(channelName)
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent(channelName)
	log.Info("Successfully sent Slack message", "channel", channel, "timestamp", timestamp)
	return channel, timestamp, nil
}

func (s *Sender) formatTime(t time.Time) string {
	return t.In(s.loc).Format("Monday 02 Jan, 15:04")
}

func location(a *notifier.Announcement) string {
	if a.Location == "" {
		return "Not specified"
	}
	return a.Location
}

func teamText(title string, team []balancer.Player) string {
	lines := make([]string, 0, len(team)+1)
	lines = append(lines, title)
	for _, p := range team {
		lines = append(lines, fmt.Sprintf("• %s (%s)", p.Name, p.Position))
	}
	return strings.Join(lines, "\n")
}

// formatPlannedNotification creates the Slack message for a planned match using Block Kit.
func (s *Sender) formatPlannedNotification(a *notifier.Announcement) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "📢 Match planned! 📢", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Location: %s\nTime: %s", location(a), s.formatTime(a.Date))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Line-ups side by side.
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("plain_text", teamText("🔴 Team A", a.TeamA), true, false),
		slack.NewTextBlockObject("plain_text", teamText("🔵 Team B", a.TeamB), true, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	if a.Prediction != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", a.Prediction, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func (s *Sender) formatResultNotification(a *notifier.Announcement) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏁 Full time! 🏁", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s at %s", location(a), s.formatTime(a.Date))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	scoreA, scoreB := *a.ScoreA, *a.ScoreB
	var result string
	switch {
	case scoreA > scoreB:
		result = "Team A won! 🏆"
	case scoreB > scoreA:
		result = "Team B won! 🏆"
	default:
		result = "Friendship won, it's a draw 🤝"
	}
	resultText := fmt.Sprintf("Result: %s\nTeam A %d - %d Team B", result, scoreA, scoreB)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	var contextElements []slack.MixedElement
	if a.MVP != "" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("🌟 MVP: %s", a.MVP), true, false))
	}
	if a.Prediction != "" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("Prediction was: %s", a.Prediction), true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}
