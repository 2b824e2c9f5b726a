package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	HTTPPort         int
	APIKey           string

	LogLevel  string
	LogFormat string
	LogFile   string

	TickerPollSecs        int
	DictionaryRebuildMins int
	DictionaryExchange    string
	DictionaryMaxCoins    int
	BaseCurrency          string

	WordsAPIKey  string
	WordsAPIHost string

	TrustWeightClamp  bool
	MentionWeightMode string
	IgnoreWords       []string

	ExpectedPumpEpsilonSecs int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIKey:           strings.TrimSpace(os.Getenv("API_KEY")),
		WordsAPIKey:      strings.TrimSpace(os.Getenv("WORDS_API_KEY")),
		LogFile:          strings.TrimSpace(os.Getenv("LOG_FILE")),
	}

	if cfg.TelegramBotToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, telegram listener disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.WordsAPIKey == "" {
		log.Warn().Msg("WORDS_API_KEY not set, dictionary rebuilds will fail")
	}

	cfg.HTTPPort = positiveInt("HTTP_PORT", 8080)
	cfg.TickerPollSecs = positiveInt("TICKER_POLL_SECS", 300)
	cfg.DictionaryRebuildMins = positiveInt("DICTIONARY_REBUILD_MINS", 360)
	cfg.DictionaryMaxCoins = positiveInt("DICTIONARY_MAX_COINS", 5)
	cfg.ExpectedPumpEpsilonSecs = positiveInt("EXPECTED_PUMP_EPSILON_SECS", 120)

	cfg.LogLevel = lowerOr("LOG_LEVEL", "info")
	cfg.LogFormat = lowerOr("LOG_FORMAT", "json")
	cfg.DictionaryExchange = lowerOr("DICTIONARY_EXCHANGE", "bittrex")
	cfg.WordsAPIHost = lowerOr("WORDS_API_HOST", "wordsapiv1.p.rapidapi.com")

	cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(os.Getenv("BASE_CURRENCY")))
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = "BTC"
	}

	cfg.TrustWeightClamp = strings.EqualFold(strings.TrimSpace(os.Getenv("TRUST_WEIGHT_CLAMP")), "true")

	cfg.MentionWeightMode = lowerOr("MENTION_WEIGHT_MODE", "canonical")
	if cfg.MentionWeightMode != "canonical" && cfg.MentionWeightMode != "alias" {
		log.Warn().Str("value", cfg.MentionWeightMode).Msg("unsupported MENTION_WEIGHT_MODE, defaulting to canonical")
		cfg.MentionWeightMode = "canonical"
	}

	for _, w := range strings.Split(os.Getenv("IGNORE_WORDS"), ",") {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			cfg.IgnoreWords = append(cfg.IgnoreWords, w)
		}
	}

	return cfg
}

func positiveInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid value, using default")
	}
	return def
}

func lowerOr(key, def string) string {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(key))); v != "" {
		return v
	}
	return def
}
