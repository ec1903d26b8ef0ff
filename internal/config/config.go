package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	OpenAIKey     string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	DefaultEngine string
	JWTSecret     string
	CORSOrigins   []string
	SessionTTL    time.Duration
	MaxInputBytes int64
}

func Load() *Config {
	// Local development convenience; a missing .env is not an error
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))

	openAIKey := os.Getenv("OPENAI_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if openAIKey == "" && geminiKey == "" {
		log.Fatal("No translation credential configured. Set OPENAI_API_KEY and/or GEMINI_API_KEY.")
	}

	defaultEngine := os.Getenv("TRANSLATE_ENGINE")
	if defaultEngine == "" {
		if openAIKey != "" {
			defaultEngine = "openai"
		} else {
			defaultEngine = "gemini"
		}
	}

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Session tokens will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	ttlMinutes, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "120"))
	maxInput, _ := strconv.ParseInt(getEnv("MAX_INPUT_BYTES", "262144"), 10, 64)

	return &Config{
		Port:          port,
		OpenAIKey:     openAIKey,
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		GeminiKey:     geminiKey,
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		DefaultEngine: defaultEngine,
		JWTSecret:     jwtSecret,
		CORSOrigins:   corsOrigins,
		SessionTTL:    time.Duration(ttlMinutes) * time.Minute,
		MaxInputBytes: maxInput,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
