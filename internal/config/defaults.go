package config

import "time"

// Default values for optional configuration parameters.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	DefaultDBPath = "astrobot.db"

	DefaultConversationTimeout = 5 * time.Minute
	DefaultMaxBroadcastUsers   = 1000
	DefaultBroadcastSendDelay  = 50 * time.Millisecond
)

// DefaultMessages holds the fixed user-facing reply texts.
var DefaultMessages = MessagesConfig{
	Welcome: "Welcome! I'm your astrology bot.\n\n" +
		"I can help you with:\n" +
		"• Daily horoscopes and readings\n" +
		"• Numerology life path calculations\n" +
		"• Zodiac compatibility checks\n" +
		"• Lucky numbers and insights\n\n" +
		"Use the menu below to get started!",
	Help: "Available Features:\n\n" +
		"• Set DOB - Configure your birth date\n" +
		"• Today's Reading - Daily horoscope\n" +
		"• Numerology - Life path analysis\n" +
		"• Compatibility - Relationship analysis\n" +
		"• Zodiac Secret - Random insights\n\n" +
		"Commands:\n" +
		"/setdob - Set birth date\n" +
		"/today - Daily reading\n" +
		"/numerology - Numerology info\n" +
		"/compatibility - Check compatibility\n" +
		"/randomfact - Random insight\n" +
		"/subscribe - Daily reading push\n" +
		"/help - Show this help",
	DOBNotSet:     "Please set your birth date first using 'Set DOB'!",
	GeneralError:  "Something went wrong. Please try again later.",
	NotAuthorized: "This command is for administrators only.",
	Cancelled:     "Operation cancelled!",
	Unknown:       "Use the menu buttons below to explore features!",
}

// DefaultSchedulerTasks enables the built-in scheduled tasks. Schedules
// are standard five-field cron expressions.
var DefaultSchedulerTasks = map[string]TaskConfig{
	"daily_horoscope": {Enabled: true, Schedule: "0 9 * * *"},
	"db_maintenance":  {Enabled: true, Schedule: "0 4 * * 0"},
}
