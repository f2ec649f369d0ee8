package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort         string
	JWTKey          []byte
	SessionTokenExp time.Duration
	ResetTokenExp   time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MailQueueName   string
	MailAPIURL      string
	MailAPIKey      string
	MailFromAddress string

	FrontendWebURL string
	BackendURL     string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:         getEnv("API_PORT", "8080"),
		JWTKey:          []byte(getEnv("JWT_SECRET", "SECRET")),
		SessionTokenExp: time.Duration(getEnvAsInt("SESSION_TOKEN_EXPIRATION_HOURS", 72)) * time.Hour,
		ResetTokenExp:   time.Duration(getEnvAsInt("RESET_TOKEN_EXPIRATION_HOURS", 24)) * time.Hour,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "crackthechain_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MailQueueName:   getEnv("MAIL_QUEUE_NAME", "outbound_mail_queue"),
		MailAPIURL:      getEnv("MAIL_API_URL", "https://api.resend.com/emails"),
		MailAPIKey:      getEnv("MAIL_API_KEY", ""),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", "CrackTheChain <no-reply@crackthechain.io>"),

		FrontendWebURL: getEnv("FRONTEND_WEB_URL", "http://localhost:3000"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080"),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
