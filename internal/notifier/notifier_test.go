package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/kickabout/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	name       string
	configured bool
	err        error
	sent       []*Announcement
}

func (f *fakeSender) Name() string                      { return f.name }
func (f *fakeSender) Configured(settings.Settings) bool { return f.configured }
func (f *fakeSender) Send(_ context.Context, _ settings.Settings, a *Announcement, _ bool) error {
	f.sent = append(f.sent, a)
	return f.err
}

func TestAnnouncement_IsResult(t *testing.T) {
	one := 1
	assert.False(t, (&Announcement{}).IsResult())
	assert.False(t, (&Announcement{ScoreA: &one}).IsResult())
	assert.True(t, (&Announcement{ScoreA: &one, ScoreB: &one}).IsResult())
}

func TestDispatcher_NotConfigured(t *testing.T) {
	d := NewDispatcher(settings.NewMock(), &fakeSender{name: "telegram"})
	err := d.Announce(context.Background(), "u1", &Announcement{}, false)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDispatcher_SendsOnConfiguredChannels(t *testing.T) {
	tg := &fakeSender{name: "telegram", configured: true}
	sl := &fakeSender{name: "slack"}
	d := NewDispatcher(settings.NewMock(), tg, sl)

	a := &Announcement{Location: "Arena"}
	require.NoError(t, d.Announce(context.Background(), "u1", a, false))
	assert.Equal(t, []*Announcement{a}, tg.sent)
	assert.Empty(t, sl.sent)
}

func TestDispatcher_PartialFailure(t *testing.T) {
	boom := errors.New("boom")
	tg := &fakeSender{name: "telegram", configured: true, err: boom}
	sl := &fakeSender{name: "slack", configured: true}
	d := NewDispatcher(settings.NewMock(), tg, sl)

	err := d.Announce(context.Background(), "u1", &Announcement{}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "telegram")
	assert.Len(t, sl.sent, 1, "a failing channel must not stop the others")

	var partial *PartialError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"slack"}, partial.Delivered)
	assert.True(t, Delivered(err))
}

func TestDispatcher_AllChannelsFail(t *testing.T) {
	tg := &fakeSender{name: "telegram", configured: true, err: errors.New("tg down")}
	sl := &fakeSender{name: "slack", configured: true, err: errors.New("slack down")}
	d := NewDispatcher(settings.NewMock(), tg, sl)

	err := d.Announce(context.Background(), "u1", &Announcement{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram")
	assert.Contains(t, err.Error(), "slack")

	var partial *PartialError
	assert.False(t, errors.As(err, &partial))
	assert.False(t, Delivered(err))
	assert.True(t, Delivered(nil))
}

func TestDispatcher_SettingsError(t *testing.T) {
	store := settings.NewMock()
	store.GetFunc = func(string) (settings.Settings, error) { return settings.Settings{}, errors.New("db down") }
	d := NewDispatcher(store, &fakeSender{name: "telegram", configured: true})
	assert.Error(t, d.Announce(context.Background(), "u1", &Announcement{}, false))
}
