package config

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	LogLevel    string
	UploadDir   string
	OpenAI      OpenAIConfig
	Chat        ChatConfig
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelVision string
	ModelText   string
}

type ChatConfig struct {
	Temperature  float32
	HistoryLimit int
	SystemPrompt string
}

// DefaultChatSystemPrompt seeds every conversation; it always stays at
// index 0 of the history, even after trimming.
const DefaultChatSystemPrompt = "You are a compassionate mental health support assistant. " +
	"Listen carefully, respond with empathy, and encourage users to seek professional help " +
	"when their concerns go beyond general wellbeing. Do not provide medical diagnoses."

func Load() *Config {
	temperature, err := strconv.ParseFloat(getEnv("CHAT_TEMPERATURE", "0.3"), 32)
	if err != nil {
		temperature = 0.3
	}

	historyLimit, err := strconv.Atoi(getEnv("CHAT_HISTORY_LIMIT", "11"))
	if err != nil || historyLimit < 2 {
		historyLimit = 11
	}

	return &Config{
		Environment: getEnv("ENV", "development"),
		Port:        getEnv("PORT", "3001"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_API_ENDPOINT", ""),
			ModelVision: getEnv("OPENAI_MODEL_NAME", "gpt-4-vision-preview"),
			ModelText:   getEnv("OPENAI_MODEL_TEXT", "gpt-3.5-turbo"),
		},
		Chat: ChatConfig{
			Temperature:  float32(temperature),
			HistoryLimit: historyLimit,
			SystemPrompt: getEnv("CHAT_SYSTEM_PROMPT", DefaultChatSystemPrompt),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
