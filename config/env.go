package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file if one exists. A missing file is fine; the
// process environment is used as-is.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("no .env file loaded:", err)
	}
}
