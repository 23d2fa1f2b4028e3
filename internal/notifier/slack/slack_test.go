package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/settings"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func intPtr(v int) *int { return &v }

func sampleAnnouncement() *notifier.Announcement {
	return &notifier.Announcement{
		TeamA:      []balancer.Player{{Name: "Volkan", Position: balancer.Goalkeeper}, {Name: "Arda", Position: balancer.Forward}},
		TeamB:      []balancer.Player{{Name: "Burak", Position: balancer.Midfielder}},
		Location:   "Kadikoy Arena",
		Date:       time.Date(2025, 7, 9, 20, 0, 0, 0, time.UTC),
		Prediction: "🏆 Team A favoured (+5 power)",
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	sender := NewSenderWithAPI(nil, "C123", time.UTC, metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := sender.sendMessage(context.Background(), "C123", message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent(channelName))
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	sender := NewSenderWithAPI(api, "C123", time.UTC, metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := sender.sendMessage(context.Background(), "C123", message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent(channelName))
	assert.Equal(t, 0, metrics.NotifFailed(channelName))
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	sender := NewSenderWithAPI(api, "C123", time.UTC, metrics)

	_, _, err := sender.sendMessage(context.Background(), "C123", slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent(channelName))
	assert.Equal(t, 1, metrics.NotifFailed(channelName))
}

func TestSend_UsesOrganizerChannel(t *testing.T) {
	var gotChannel string
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			gotChannel = channelID
			return channelID, "ts", nil
		},
	}
	sender := NewSenderWithAPI(api, "CDEFAULT", time.UTC, metrics.NewMock())

	require.NoError(t, sender.Send(context.Background(), settings.Settings{SlackChannelID: "CORG"}, sampleAnnouncement(), false))
	assert.Equal(t, "CORG", gotChannel)

	require.NoError(t, sender.Send(context.Background(), settings.Settings{}, sampleAnnouncement(), false))
	assert.Equal(t, "CDEFAULT", gotChannel)
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewSender("", "C1", time.UTC, metrics.NewMock()).Configured(settings.Settings{SlackChannelID: "C2"}), "no token")
	assert.False(t, NewSenderWithAPI(&mockSlackAPI{}, "", time.UTC, metrics.NewMock()).Configured(settings.Settings{}), "no channel")
	assert.True(t, NewSenderWithAPI(&mockSlackAPI{}, "", time.UTC, metrics.NewMock()).Configured(settings.Settings{SlackChannelID: "C2"}))
}

func TestFormatPlannedNotification(t *testing.T) {
	sender := &Sender{loc: time.UTC}
	msg := sender.formatPlannedNotification(sampleAnnouncement())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "📢 Match planned! 📢", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Location: Kadikoy Arena\nTime: Wednesday 09 Jul, 20:00", details.Text.Text)

	teams, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, teams.Fields, 2)
	assert.Equal(t, "🔴 Team A\n• Volkan (Goalkeeper)\n• Arda (Forward)", teams.Fields[0].Text)
	assert.Equal(t, "🔵 Team B\n• Burak (Midfielder)", teams.Fields[1].Text)

	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	prediction, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "🏆 Team A favoured (+5 power)", prediction.Text)
}

func TestFormatResultNotification(t *testing.T) {
	a := sampleAnnouncement()
	a.ScoreA, a.ScoreB = intPtr(2), intPtr(5)
	a.MVP = "Burak"

	sender := &Sender{loc: time.UTC}
	msg := sender.formatResultNotification(a)
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Kadikoy Arena at Wednesday 09 Jul, 20:00", details.Text.Text)

	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Result: Team B won! 🏆\nTeam A 2 - 5 Team B", result.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, contextBlock.ContextElements.Elements, 2)
	mvp, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "🌟 MVP: Burak", mvp.Text)
}

func TestFormatResultNotification_Draw(t *testing.T) {
	a := sampleAnnouncement()
	a.ScoreA, a.ScoreB = intPtr(1), intPtr(1)
	a.Prediction = ""

	sender := &Sender{loc: time.UTC}
	msg := sender.formatResultNotification(a)
	require.Len(t, msg.Blocks.BlockSet, 3, "no context block without MVP or prediction")

	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, result.Text.Text, "draw")
}
