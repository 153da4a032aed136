package config

import (
	"fmt"
	"strings"

	"github.com/abhisek/triviaz/internal/trivia"
)

// Issue is one problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates every Issue found.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Normalize trims and lowercases enum-like fields.
func Normalize(cfg *Config) {
	lower := func(s *string) { *s = strings.ToLower(strings.TrimSpace(*s)) }
	lower(&cfg.Quiz.Difficulty)
	lower(&cfg.Provider.Source)
	lower(&cfg.Provider.Type)
	lower(&cfg.LLM.Provider)
	cfg.Quiz.Username = strings.TrimSpace(cfg.Quiz.Username)
	cfg.Provider.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Provider.BaseURL), "/")
	if cfg.Quiz.Difficulty == "any" {
		cfg.Quiz.Difficulty = ""
	}
}

// Validate checks the settings every command relies on.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Quiz.BatchSize < 1 {
		collector.add("quiz.batch_size", "must be at least 1")
	}
	if cfg.Quiz.WindowSize < 1 {
		collector.add("quiz.window_size", "must be at least 1")
	}
	if _, err := trivia.ParseDifficulty(cfg.Quiz.Difficulty); err != nil {
		collector.add("quiz.difficulty", "must be easy, medium, hard or any")
	}

	switch cfg.Provider.Source {
	case SourceOpenTDB:
		if cfg.Provider.BaseURL == "" {
			collector.add("provider.base_url", "is required for the opentdb source")
		}
		switch cfg.Provider.Type {
		case "", "multiple", "boolean":
		default:
			collector.add("provider.type", "must be multiple or boolean")
		}
		if cfg.Provider.Category < 0 {
			collector.add("provider.category", "must not be negative")
		}
	case SourceLLM:
		if err := cfg.LLM.Validate(); err != nil {
			collector.add("llm", err.Error())
		}
	case SourceStatic:
	default:
		collector.add("provider.source", fmt.Sprintf("unknown source %q (want opentdb, llm or static)", cfg.Provider.Source))
	}
	if cfg.Provider.Timeout < 0 {
		collector.add("provider.timeout", "must not be negative")
	}

	return collector.result()
}

// RequireWeb checks the settings `serve` needs.
func RequireWeb(cfg *Config) error {
	collector := &issueCollector{}
	if strings.TrimSpace(cfg.Web.Addr) == "" {
		collector.add("web.addr", "is required")
	}
	if s := cfg.Web.CookieSecret; s != "" && len(s) < 32 {
		collector.add("web.cookie_secret", "must be at least 32 bytes")
	}
	return collector.result()
}

// RequireTelegram checks the settings `bot` needs.
func RequireTelegram(cfg *Config) error {
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return &ValidationError{Issues: []Issue{{Field: "telegram.token", Message: "is required (or set TELEGRAM_BOT_TOKEN)"}}}
	}
	return nil
}
