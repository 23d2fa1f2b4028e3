package config

// Config holds all configuration for the application.
type Config struct {
	DBName      string       `koanf:"db_name"`
	Port        string       `koanf:"port"`
	Slack       SlackConfig  `koanf:"slack"`
	Turso       TursoConfig  `koanf:"turso"`
	ProjectID   string       `koanf:"project_id"`
	PubSubTopic string       `koanf:"pubsub_topic"`
	Timezone    string       `koanf:"timezone"`
	LogLevel    string       `koanf:"log_level"`
	Seed        SeederConfig `koanf:"seed"`
}

// SlackConfig is the server-wide Slack bot. Organizers pick the channel in
// their settings, ChannelID is used when they have not.
type SlackConfig struct {
	Token     string `koanf:"token"`
	ChannelID string `koanf:"channel_id"`
}

type TursoConfig struct {
	PrimaryURL string `koanf:"primary_url"`
	AuthToken  string `koanf:"auth_token"`
}

// SeederConfig is only read by cmd/seeder.
type SeederConfig struct {
	OwnerID string `koanf:"owner_id"`
}
