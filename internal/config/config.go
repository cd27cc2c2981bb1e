package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL        string
	AppName            string
	Debug              bool
	PlayerName         string
	ReceiptSecret      string
	TuningFile         string
	AchievementsScript string
	LeaderboardSize    int
	Tuning             Tuning
}

// Load reads .env from the working directory and the process environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file path. A missing RECEIPT_SECRET is
// generated and appended to envFile.
func LoadFrom(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Println("[INFO] No .env file found, reading from environment")
	}

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "sqlite3://blockgrid.db"),
		AppName:            getEnv("APP_NAME", "Blockgrid"),
		Debug:              getEnvAsBool("DEBUG", false),
		PlayerName:         getEnv("PLAYER_NAME", getEnv("USER", "player")),
		ReceiptSecret:      os.Getenv("RECEIPT_SECRET"),
		TuningFile:         os.Getenv("TUNING_FILE"),
		AchievementsScript: os.Getenv("ACHIEVEMENTS_SCRIPT"),
		LeaderboardSize:    getEnvAsInt("LEADERBOARD_SIZE", 10),
		Tuning:             DefaultTuning(),
	}

	if cfg.ReceiptSecret == "" {
		secret, err := generateSecret(envFile)
		if err != nil {
			return nil, err
		}
		log.Printf("[SETUP] RECEIPT_SECRET was missing. A new secret has been generated and saved to %s", envFile)
		cfg.ReceiptSecret = secret
	}

	if cfg.TuningFile != "" {
		t, err := LoadTuning(cfg.TuningFile)
		if err != nil {
			return nil, err
		}
		cfg.Tuning = t
	}

	return cfg, nil
}

func generateSecret(envFile string) (string, error) {
	newKey := make([]byte, 32)
	if _, err := rand.Read(newKey); err != nil {
		return "", fmt.Errorf("failed to generate a receipt secret: %w", err)
	}
	encodedKey := base64.StdEncoding.EncodeToString(newKey)

	f, err := os.OpenFile(envFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		errorMsg := fmt.Sprintf(`
FATAL: RECEIPT_SECRET is not set and I couldn't write to %s.
Error: %v

Please create the file and add the following line:

RECEIPT_SECRET=%s

`, envFile, err, encodedKey)
		return "", fmt.Errorf("%s", errorMsg)
	}
	defer f.Close()

	newLine := fmt.Sprintf("\nRECEIPT_SECRET=%s\n", encodedKey)
	if _, err := f.WriteString(newLine); err != nil {
		return "", fmt.Errorf("failed to write receipt secret to %s: %w", envFile, err)
	}
	os.Setenv("RECEIPT_SECRET", encodedKey)
	return encodedKey, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
