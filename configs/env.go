package configs

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// env reads a variable after loading .env once. A missing .env file is not
// fatal: deployments may configure the process environment directly.
func env(key, fallback string) string {
	loadOnce.Do(func() {
		_ = godotenv.Load()
	})
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func EnvMongoURI() string {
	return env("MONGOURI", "")
}

func EnvMongoDBName() string {
	return env("MONGO_DBNAME", "harukistore")
}

func EnvJWTSecret() string {
	return env("JWT_SECRET", "")
}

func EnvWhatsAppNumber() string {
	return env("WHATSAPP_NUMBER", "")
}

func EnvStoreCurrency() string {
	return env("STORE_CURRENCY", "MAD")
}

func EnvPort() string {
	return env("PORT", ":3000")
}
