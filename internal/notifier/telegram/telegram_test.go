package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/settings"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var istanbul = time.FixedZone("TRT", 3*60*60)

// mockBot records the messages it is asked to send.
type mockBot struct {
	mu      sync.Mutex
	sendErr error
	sent    []tgbotapi.Chattable
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c)
	if m.sendErr != nil {
		return tgbotapi.Message{}, m.sendErr
	}
	return tgbotapi.Message{MessageID: len(m.sent)}, nil
}

func intPtr(v int) *int { return &v }

func sampleAnnouncement() *notifier.Announcement {
	return &notifier.Announcement{
		TeamA: []balancer.Player{
			{ID: "g1", Name: "Volkan", Position: balancer.Goalkeeper, Rating: 80},
			{ID: "f1", Name: "Arda_T", Position: balancer.Forward, Rating: 70},
		},
		TeamB: []balancer.Player{
			{ID: "f2", Name: "Burak", Position: balancer.Midfielder, Rating: 75},
		},
		Location:   "Kadikoy Arena",
		Date:       time.Date(2025, 5, 1, 17, 0, 0, 0, time.UTC),
		Prediction: "🏆 Team A favoured (+3 power)",
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestFormat_Planned(t *testing.T) {
	newGoldie(t).Assert(t, "planned", []byte(Format(sampleAnnouncement(), istanbul)))
}

func TestFormat_ResultTeamA(t *testing.T) {
	a := sampleAnnouncement()
	a.ScoreA, a.ScoreB = intPtr(3), intPtr(2)
	a.MVP = "Arda_T"
	newGoldie(t).Assert(t, "result_team_a", []byte(Format(a, istanbul)))
}

func TestFormat_ResultDraw(t *testing.T) {
	a := sampleAnnouncement()
	a.ScoreA, a.ScoreB = intPtr(1), intPtr(1)
	a.Location = ""
	a.Prediction = ""
	newGoldie(t).Assert(t, "result_draw", []byte(Format(a, istanbul)))
}

func TestFormat_ResultTeamB(t *testing.T) {
	a := sampleAnnouncement()
	a.ScoreA, a.ScoreB = intPtr(0), intPtr(2)
	assert.Contains(t, Format(a, istanbul), "🔵 TEAM B WON!")
}

func TestFormat_OnlyOneScoreIsPlanned(t *testing.T) {
	a := sampleAnnouncement()
	a.ScoreA = intPtr(4)
	assert.Contains(t, Format(a, istanbul), "MATCH PLANNED")
}

func TestNewMessage(t *testing.T) {
	numeric := newMessage("-100123", "hi")
	assert.Equal(t, int64(-100123), numeric.ChatID)
	assert.Empty(t, numeric.ChannelUsername)
	assert.Equal(t, tgbotapi.ModeMarkdown, numeric.ParseMode)

	channel := newMessage("@kickabout", "hi")
	assert.Equal(t, "@kickabout", channel.ChannelUsername)
}

func TestSend_Success(t *testing.T) {
	bot := &mockBot{}
	created := 0
	factory := func(token string) (Bot, error) {
		created++
		assert.Equal(t, "123:abc", token)
		return bot, nil
	}
	m := metrics.NewMock()
	sender := NewSenderWithFactory(factory, istanbul, m)
	cfg := settings.Settings{TelegramBotToken: "123:abc", TelegramChatID: "42"}

	require.True(t, sender.Configured(cfg))
	require.NoError(t, sender.Send(context.Background(), cfg, sampleAnnouncement(), false))
	require.NoError(t, sender.Send(context.Background(), cfg, sampleAnnouncement(), false))

	assert.Equal(t, 1, created, "bots are cached per token")
	require.Len(t, bot.sent, 2)
	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "MATCH PLANNED")
	assert.Equal(t, 2, m.NotifSent(channelName))
}

func TestSend_DryRun(t *testing.T) {
	factory := func(string) (Bot, error) {
		t.Fatal("no bot should be created in dry-run mode")
		return nil, nil
	}
	m := metrics.NewMock()
	sender := NewSenderWithFactory(factory, istanbul, m)
	cfg := settings.Settings{TelegramBotToken: "123:abc", TelegramChatID: "42"}

	require.NoError(t, sender.Send(context.Background(), cfg, sampleAnnouncement(), true))
	assert.Equal(t, 0, m.NotifSent(channelName))
}

func TestSend_Failures(t *testing.T) {
	cfg := settings.Settings{TelegramBotToken: "bad", TelegramChatID: "42"}

	t.Run("invalid token is not cached", func(t *testing.T) {
		calls := 0
		factory := func(string) (Bot, error) {
			calls++
			return nil, errors.New("Not Found")
		}
		m := metrics.NewMock()
		sender := NewSenderWithFactory(factory, istanbul, m)
		assert.Error(t, sender.Send(context.Background(), cfg, sampleAnnouncement(), false))
		assert.Error(t, sender.Send(context.Background(), cfg, sampleAnnouncement(), false))
		assert.Equal(t, 2, calls)
		assert.Equal(t, 2, m.NotifFailed(channelName))
	})

	t.Run("send error", func(t *testing.T) {
		sendErr := errors.New("chat not found")
		bot := &mockBot{sendErr: sendErr}
		m := metrics.NewMock()
		sender := NewSenderWithFactory(func(string) (Bot, error) { return bot, nil }, istanbul, m)
		err := sender.Send(context.Background(), cfg, sampleAnnouncement(), false)
		assert.ErrorIs(t, err, sendErr)
		assert.Equal(t, 1, m.NotifFailed(channelName))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sender := NewSenderWithFactory(func(string) (Bot, error) { return &mockBot{}, nil }, istanbul, metrics.NewMock())
		assert.ErrorIs(t, sender.Send(ctx, cfg, sampleAnnouncement(), false), context.Canceled)
	})
}

func TestConfigured(t *testing.T) {
	sender := NewSender(istanbul, metrics.NewMock())
	assert.Equal(t, "telegram", sender.Name())
	assert.False(t, sender.Configured(settings.Settings{TelegramBotToken: "x"}))
	assert.False(t, sender.Configured(settings.Settings{TelegramChatID: "1"}))
}
