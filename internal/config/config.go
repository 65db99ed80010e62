package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendURL    string
	BackendAPIKey string
	AccessToken   string
	RedisAddr     string
	AMQPUrl       string
	AppEnv        string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		BackendURL:    os.Getenv("BACKEND_URL"),
		BackendAPIKey: os.Getenv("BACKEND_APIKEY"),
		AccessToken:   os.Getenv("ACCESS_TOKEN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		AMQPUrl:       os.Getenv("AMQP_URL"),
		AppEnv:        os.Getenv("APP_ENV"),
	}

	if cfg.BackendURL == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
