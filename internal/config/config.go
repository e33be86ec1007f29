package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Evolution API gateway
	EvolutionAPIURL  string
	EvolutionAPIKey  string
	InstanceName     string
	WebhookURL       string
	GatewayTimeout   time.Duration
	ReplyDelay       time.Duration
	MaxAudioMegabyte int

	// OpenAI (transcription + intent analysis)
	OpenAIAPIKey      string
	OpenAIChatModel   string
	OpenAIAudioModel  string
	ChatTimeout       time.Duration
	TranscribeTimeout time.Duration

	// Gemini (fallback intent analysis)
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "3000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		EvolutionAPIURL:  getEnv("EVOLUTION_API_URL", "http://localhost:8080"),
		EvolutionAPIKey:  getEnv("EVOLUTION_API_KEY", ""),
		InstanceName:     getEnv("INSTANCE_NAME", "bot-corretor"),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
		GatewayTimeout:   getEnvAsDuration("GATEWAY_TIMEOUT", 60*time.Second),
		ReplyDelay:       getEnvAsDuration("REPLY_DELAY", 1500*time.Millisecond),
		MaxAudioMegabyte: getEnvAsInt("MAX_AUDIO_MB", 25),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIChatModel:   getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		OpenAIAudioModel:  getEnv("OPENAI_AUDIO_MODEL", "whisper-1"),
		ChatTimeout:       getEnvAsDuration("OPENAI_CHAT_TIMEOUT", 30*time.Second),
		TranscribeTimeout: getEnvAsDuration("OPENAI_TRANSCRIBE_TIMEOUT", 60*time.Second),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
