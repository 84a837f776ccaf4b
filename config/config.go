package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	LogLevel      string
	SiteURL       string
	SiteOwner     string
	DefaultLocale string
	PublicDir     string
	SecureCookies bool
	// CORS origins allowed to call the JSON API
	AllowedOrigins []string
	// Email delivery
	EmailProvider        string // resend, smtp or log; empty = auto
	ResendAPIKey         string
	ResendBaseURL        string
	FromEmail            string // Verified sender address
	ContactEmail         string // Mailbox receiving contact messages
	ContactSubjectPrefix string
	SMTPHost             string
	SMTPPort             string
	SMTPUsername         string
	SMTPPassword         string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitGlobalThreshold  int
	RateLimitContactThreshold int
	// Object storage for CV downloads
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	WasabiEndpoint    string
	CVPresignMinutes  int
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SiteURL:       strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		SiteOwner:     getEnv("SITE_OWNER", "Hamza CHARAFI"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		PublicDir:     getEnv("PUBLIC_DIR", "./public"),
		SecureCookies: getEnvBool("SECURE_COOKIES", false),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:8080",
		}),
		// Email
		EmailProvider:        strings.ToLower(getEnv("EMAIL_PROVIDER", "")),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		ResendBaseURL:        strings.TrimRight(getEnv("RESEND_BASE_URL", "https://api.resend.com"), "/"),
		FromEmail:            getEnv("FROM_EMAIL", "onboarding@resend.dev"),
		ContactEmail:         getEnv("CONTACT_EMAIL", "h.charafi@gmail.com"),
		ContactSubjectPrefix: getEnv("CONTACT_SUBJECT_PREFIX", "Portfolio Contact: "),
		SMTPHost:             getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:             getEnv("SMTP_PORT", "587"),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		// Object storage
		S3Provider:        strings.ToLower(getEnv("S3_PROVIDER", "aws")),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		WasabiEndpoint:    getEnv("WASABI_ENDPOINT", ""),
		CVPresignMinutes:  getEnvInt("CV_PRESIGN_MINUTES", 15),
	}

	if cfg.ResendAPIKey == "" && cfg.SMTPUsername == "" {
		log.Println("WARNING: no email provider configured. Contact messages will only be logged.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// StorageConfigured reports whether CV downloads can be presigned from object storage.
func (c *Config) StorageConfigured() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
