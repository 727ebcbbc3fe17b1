package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. The YAML file at configPath
// 3. BOT_* environment variables
//
// A missing config file is not an error; required values can come from
// the environment alone.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		// Config file not found is okay, we'll use defaults and env vars.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values for optional configuration parameters.
func setDefaults(v *viper.Viper) {
	// Empty defaults register the required keys so BOT_TELEGRAM_TOKEN and
	// BOT_TELEGRAM_ADMIN_IDS are picked up from the environment alone;
	// validation still rejects them when left unset.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_ids", []int64{})

	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("bot.conversation_timeout", DefaultConversationTimeout)
	v.SetDefault("bot.max_broadcast_users", DefaultMaxBroadcastUsers)
	v.SetDefault("bot.broadcast_send_delay", DefaultBroadcastSendDelay)

	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.dob_not_set", DefaultMessages.DOBNotSet)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
	v.SetDefault("messages.cancelled", DefaultMessages.Cancelled)
	v.SetDefault("messages.unknown", DefaultMessages.Unknown)

	for name, task := range DefaultSchedulerTasks {
		v.SetDefault(fmt.Sprintf("scheduler.tasks.%s.enabled", name), task.Enabled)
		v.SetDefault(fmt.Sprintf("scheduler.tasks.%s.schedule", name), task.Schedule)
	}
}
