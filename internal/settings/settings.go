// Package settings stores each organizer's notification channels.
package settings

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Settings holds where announcements for an organizer are delivered.
type Settings struct {
	TelegramBotToken string `json:"telegramBotToken"`
	TelegramChatID   string `json:"telegramChatId"`
	SlackChannelID   string `json:"slackChannelId"`
}

// TelegramConfigured reports whether both Telegram fields are set.
func (s Settings) TelegramConfigured() bool {
	return s.TelegramBotToken != "" && s.TelegramChatID != ""
}

// Store reads and writes organizer settings.
type Store interface {
	Get(userID string) (Settings, error)
	Save(userID string, s Settings) error
}

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

func New(db *sql.DB) Store {
	return &store{db: db}
}

// Get returns the zero Settings for unknown users.
func (s *store) Get(userID string) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out Settings
	err := s.db.QueryRow(`
		SELECT telegram_bot_token, telegram_chat_id, slack_channel_id FROM users WHERE id = ?
	`, userID).Scan(&out.TelegramBotToken, &out.TelegramChatID, &out.SlackChannelID)
	if err == sql.ErrNoRows {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load settings for %s: %w", userID, err)
	}
	return out, nil
}

// Save upserts the settings of userID, replacing every field.
func (s *store) Save(userID string, in Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO users (id, telegram_bot_token, telegram_chat_id, slack_channel_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			telegram_bot_token = excluded.telegram_bot_token,
			telegram_chat_id = excluded.telegram_chat_id,
			slack_channel_id = excluded.slack_channel_id,
			updated_at = excluded.updated_at
	`, userID, in.TelegramBotToken, in.TelegramChatID, in.SlackChannelID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save settings for %s: %w", userID, err)
	}
	log.Info("Saved settings", "user", userID, "telegram", in.TelegramConfigured(), "slack", in.SlackChannelID != "")
	return nil
}

// Mock is an in-memory Store for tests.
type Mock struct {
	mu       sync.Mutex
	settings map[string]Settings

	GetFunc func(userID string) (Settings, error)
}

func NewMock() *Mock {
	return &Mock{settings: make(map[string]Settings)}
}

func (m *Mock) Get(userID string) (Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings[userID], nil
}

func (m *Mock) Save(userID string, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[userID] = s
	return nil
}
