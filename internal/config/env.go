package config

import (
	"fmt"
	"strconv"
	"time"
)

// ApplyEnv overlays TRIVIAZ_* variables. Malformed numbers are reported
// together.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	collector := &issueCollector{}

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		v := getenv(key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			collector.add(key, fmt.Sprintf("not an integer: %q", v))
			return
		}
		*dst = n
	}
	dur := func(key string, dst *time.Duration) {
		v := getenv(key)
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			collector.add(key, fmt.Sprintf("not a duration: %q", v))
			return
		}
		*dst = d
	}
	flag := func(key string, dst *bool) {
		v := getenv(key)
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			collector.add(key, fmt.Sprintf("not a boolean: %q", v))
			return
		}
		*dst = b
	}

	num("TRIVIAZ_BATCH_SIZE", &c.Quiz.BatchSize)
	num("TRIVIAZ_WINDOW_SIZE", &c.Quiz.WindowSize)
	str("TRIVIAZ_DIFFICULTY", &c.Quiz.Difficulty)
	str("TRIVIAZ_USERNAME", &c.Quiz.Username)

	str("TRIVIAZ_SOURCE", &c.Provider.Source)
	str("TRIVIAZ_OPENTDB_URL", &c.Provider.BaseURL)
	dur("TRIVIAZ_HTTP_TIMEOUT", &c.Provider.Timeout)
	num("TRIVIAZ_CATEGORY", &c.Provider.Category)
	str("TRIVIAZ_QUESTION_TYPE", &c.Provider.Type)
	flag("TRIVIAZ_SESSION_TOKEN", &c.Provider.SessionToken)
	str("TRIVIAZ_TOPIC", &c.Provider.Topic)

	str("TRIVIAZ_DB", &c.Store.Path)

	str("TRIVIAZ_WEB_ADDR", &c.Web.Addr)
	str("TRIVIAZ_COOKIE_SECRET", &c.Web.CookieSecret)

	str("TELEGRAM_BOT_TOKEN", &c.Telegram.Token)
	str("TRIVIAZ_TELEGRAM_TOKEN", &c.Telegram.Token)

	c.LLM.ApplyEnv(getenv)
	return collector.result()
}
