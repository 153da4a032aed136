// Package config loads triviaz settings from YAML, environment and flags.
package config

import (
	"time"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/trivia"
)

// Question sources.
const (
	SourceOpenTDB = "opentdb"
	SourceLLM     = "llm"
	SourceStatic  = "static"
)

// Config is the complete application configuration.
type Config struct {
	Quiz     QuizConfig     `yaml:"quiz"`
	Provider ProviderConfig `yaml:"provider"`
	LLM      llm.Config     `yaml:"llm"`
	Store    StoreConfig    `yaml:"store"`
	Web      WebConfig      `yaml:"web"`
	Telegram TelegramConfig `yaml:"telegram"`
}

type QuizConfig struct {
	BatchSize  int    `yaml:"batch_size"`
	WindowSize int    `yaml:"window_size"`
	Difficulty string `yaml:"difficulty"`
	Username   string `yaml:"username"`
}

// ProviderConfig selects where questions come from.
type ProviderConfig struct {
	// Source is one of "opentdb", "llm" or "static".
	Source string `yaml:"source"`

	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	Category     int           `yaml:"category"`
	Type         string        `yaml:"type"`
	SessionToken bool          `yaml:"session_token"`

	// Topic steers the llm source.
	Topic string `yaml:"topic"`
}

type StoreConfig struct {
	// Path of the SQLite database. Empty resolves to the XDG data dir.
	Path string `yaml:"path"`
}

type WebConfig struct {
	Addr         string        `yaml:"addr"`
	CookieSecret string        `yaml:"cookie_secret"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type TelegramConfig struct {
	Token       string `yaml:"token"`
	PollTimeout int    `yaml:"poll_timeout"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	qc := quiz.DefaultConfig()
	return Config{
		Quiz: QuizConfig{
			BatchSize:  qc.BatchSize,
			WindowSize: qc.WindowSize,
			Difficulty: string(qc.InitialDifficulty),
		},
		Provider: ProviderConfig{
			Source:       SourceOpenTDB,
			BaseURL:      "https://opentdb.com",
			Timeout:      10 * time.Second,
			Type:         "multiple",
			SessionToken: true,
		},
		LLM: llm.DefaultConfig(),
		Web: WebConfig{
			Addr:        "127.0.0.1:8080",
			IdleTimeout: 30 * time.Minute,
		},
		Telegram: TelegramConfig{PollTimeout: 60},
	}
}

// QuizSettings converts the quiz section for quiz.New. Call after Validate.
func (c Config) QuizSettings() quiz.Config {
	d, _ := trivia.ParseDifficulty(c.Quiz.Difficulty)
	return quiz.Config{
		BatchSize:         c.Quiz.BatchSize,
		WindowSize:        c.Quiz.WindowSize,
		InitialDifficulty: d,
		MixedStart:        d == trivia.DifficultyAny,
		Username:          c.Quiz.Username,
	}
}

const redacted = "********"

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	mask := func(s *string) {
		if *s != "" {
			*s = redacted
		}
	}
	mask(&c.Web.CookieSecret)
	mask(&c.Telegram.Token)
	mask(&c.LLM.Anthropic.APIKey)
	mask(&c.LLM.OpenAI.APIKey)
	mask(&c.LLM.Gemini.APIKey)
	mask(&c.LLM.OpenRouter.APIKey)
	return c
}
