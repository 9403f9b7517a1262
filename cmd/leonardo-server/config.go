package main

import (
	"leonardo-backend/lib/configutil"
	configlibsql "leonardo-backend/lib/configutil/libsql"
	"leonardo-backend/services/watcher"
	"time"
)

type TimetableConfig struct {
	// PageUrl contains {page} or {page3}, e.g. https://example.org/vplan/subst_{page3}.htm
	PageUrl        string `json:"page_url"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	MaxPages       int    `json:"max_pages"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c TimetableConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type WatcherConfig struct {
	Enabled      bool                   `json:"enabled"`
	Schedule     string                 `json:"schedule"`
	Class        string                 `json:"class"`
	ReportErrors bool                   `json:"report_errors"`
	Database     configlibsql.Struct    `json:"database"`
	Email        watcher.EmailConfig    `json:"email"`
	Telegram     watcher.TelegramConfig `json:"telegram"`
}

type Config struct {
	Port        int             `json:"port"`
	AccessToken string          `json:"access_token"`
	Timetable   TimetableConfig `json:"timetable"`
	Watcher     WatcherConfig   `json:"watcher"`
}

// ReadConfig reads the json5 config and lets the environment (or a .env
// file) override the secrets in it.
func ReadConfig(path string) (Config, error) {
	err := configutil.LoadDotenv()
	if err != nil {
		return Config{}, err
	}

	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil {
		return Config{}, err
	}

	configutil.OverrideFromEnv(&cfg.Timetable.Username, "LEONARDO_USERNAME")
	configutil.OverrideFromEnv(&cfg.Timetable.Password, "LEONARDO_PASSWORD")
	configutil.OverrideFromEnv(&cfg.AccessToken, "LEONARDO_ACCESS_TOKEN")
	configutil.OverrideFromEnv(&cfg.Watcher.Telegram.Token, "LEONARDO_TELEGRAM_TOKEN")
	configutil.OverrideFromEnv(&cfg.Watcher.Email.Password, "LEONARDO_SMTP_PASSWORD")

	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Watcher.Database.File == "" {
		cfg.Watcher.Database.File = "<dev_state>/watcher.db"
	}
	return cfg, nil
}
