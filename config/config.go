package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every recognized option, populated from environment
// variables. API keys stay in this value for the lifetime of the process
// and are never logged.
type Config struct {
	TavilyAPIKey string
	GeminiAPIKey string
	GeminiModel  string

	HostVoice   string
	GuestVoice  string
	TTSLanguage string

	MaxSearchResults int
	LineGapMS        int
	TTSConcurrency   int

	OutputDir string
	HTTPAddr  string

	SearchTimeout time.Duration
	LLMTimeout    time.Duration
	TTSTimeout    time.Duration

	// DropUnattributedLines drops script lines without a recognized
	// speaker prefix instead of appending them to the previous turn.
	DropUnattributedLines bool
}

// Load reads the .env file if present and returns Config with defaults
// applied.
func Load() *Config {
	_ = godotenv.Load()
	cfg := &Config{
		TavilyAPIKey:          os.Getenv("TAVILY_API_KEY"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		HostVoice:             getEnv("HOST_VOICE", "en-US-Standard-D"),
		GuestVoice:            getEnv("GUEST_VOICE", "en-US-Standard-C"),
		TTSLanguage:           getEnv("TTS_LANGUAGE", "en-US"),
		MaxSearchResults:      getEnvInt("MAX_SEARCH_RESULTS", 5),
		LineGapMS:             getEnvInt("LINE_GAP_MS", 500),
		TTSConcurrency:        getEnvInt("TTS_CONCURRENCY", 4),
		OutputDir:             getEnv("OUTPUT_DIR", "podcasts"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8000"),
		SearchTimeout:         getEnvDuration("SEARCH_TIMEOUT", 30*time.Second),
		LLMTimeout:            getEnvDuration("LLM_TIMEOUT", 2*time.Minute),
		TTSTimeout:            getEnvDuration("TTS_TIMEOUT", 90*time.Second),
		DropUnattributedLines: getEnvBool("DROP_UNATTRIBUTED_LINES", false),
	}
	// Bound search results to keep summarization cost in check.
	if cfg.MaxSearchResults < 1 {
		cfg.MaxSearchResults = 1
	}
	if cfg.MaxSearchResults > 10 {
		cfg.MaxSearchResults = 10
	}
	if cfg.TTSConcurrency < 1 {
		cfg.TTSConcurrency = 1
	}
	if cfg.LineGapMS < 0 {
		cfg.LineGapMS = 0
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
