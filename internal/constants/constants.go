package constants

import "time"

const (
	AppName            = "leitstand"
	DefaultKeyringUser = "database-connection"
	OpenAIKeyringUser  = "openai-api-key"
	DefaultConfigPath  = "~/.config/leitstand/config.yaml"
	DefaultDBFileName  = "leitstand.db"
	// KeyringDatabase as the configured database reads the connection string from the OS keyring
	KeyringDatabase = "keyring"
	Version         = "v0.3.0"

	// DateFormat is the persisted calendar-day format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the free-text time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// DisplayDateFormat is used in German-facing tables (TT.MM.JJJJ)
	DisplayDateFormat = "02.01.2006"

	DefaultTimezone = "Europe/Berlin"

	// Log rotation, sizes in megabytes
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "leitstand-"
	BackupFileSuffix = ".db"

	// Lockfile constants
	ServerLockfileName = "leitstand-serve.lock"
	KioskLockfileName  = "leitstand-kiosk.lock"

	// Kiosk constants
	KioskRefreshInterval   = 30 * time.Second
	WeatherRefreshInterval = 15 * time.Minute
	UpcomingTrainingDays   = 60
	BriefingHorizonDays    = 7

	// MaxCalendarRangeDays caps the inclusive from..to span of a calendar request
	MaxCalendarRangeDays = 366

	// Weather defaults (Suhl)
	DefaultLatitude  = 50.609
	DefaultLongitude = 10.694

	// Assistant defaults
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultOpenAITemperature = 0.4
	OpenAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	OpenMeteoForecastURL     = "https://api.open-meteo.com/v1/forecast"

	// Server defaults
	DefaultListenAddr  = "127.0.0.1:8080"
	DefaultRefreshCron = "*/5 * * * *"
	DefaultWeatherCron = "*/15 * * * *"
)
