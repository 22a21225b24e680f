package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL   string
	REDIS_ADDRESS  string
	REDIS_PASSWORD string
	PORT           string

	// StrictActivation makes activating an already-active voucher fail
	// instead of being a no-op.
	StrictActivation bool
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	Config = &AppConfig{
		DATABASE_URL:     os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:    os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD:   os.Getenv("REDIS_PASSWORD"),
		PORT:             port,
		StrictActivation: os.Getenv("STRICT_VOUCHER_ACTIVATION") != "false",
	}

	return Config
}
