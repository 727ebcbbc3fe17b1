// Package config manages application configuration from config.yaml,
// BOT_-prefixed environment variables, and default values.
package config

import "time"

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g. BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Bot       BotConfig       `mapstructure:"bot"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// TelegramConfig holds the bot token and the privileged identity set.
type TelegramConfig struct {
	Token    string  `mapstructure:"token"     validate:"required"`
	AdminIDs []int64 `mapstructure:"admin_ids" validate:"required,min=1,dive,gt=0"`
}

// IsAdmin reports whether a user ID belongs to the configured admin set.
func (c *TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// BotConfig holds tunables for the conversation and broadcast behavior.
type BotConfig struct {
	ConversationTimeout time.Duration `mapstructure:"conversation_timeout" validate:"min=30s,max=1h"`
	MaxBroadcastUsers   int           `mapstructure:"max_broadcast_users"  validate:"min=1"`
	BroadcastSendDelay  time.Duration `mapstructure:"broadcast_send_delay" validate:"min=0"`
}

// MessagesConfig holds the fixed user-facing reply texts.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"`
	Help          string `mapstructure:"help"`
	DOBNotSet     string `mapstructure:"dob_not_set"`
	GeneralError  string `mapstructure:"general_error"`
	NotAuthorized string `mapstructure:"not_authorized"`
	Cancelled     string `mapstructure:"cancelled"`
	Unknown       string `mapstructure:"unknown"`
}

// SchedulerConfig lists the scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a named task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}
