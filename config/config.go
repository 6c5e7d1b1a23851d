package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	PublicURL         string `mapstructure:"PUBLIC_URL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
	DraftTTLHours int    `mapstructure:"DRAFT_TTL_HOURS"`

	// Payment gateway configuration.
	PaymentGateway      string `mapstructure:"PAYMENT_GATEWAY"`
	Currency            string `mapstructure:"CURRENCY"`
	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	DodoAPIKey          string `mapstructure:"DODO_API_KEY"`
	DodoAPIURL          string `mapstructure:"DODO_API_URL"`
	DodoWebhookSecret   string `mapstructure:"DODO_WEBHOOK_SECRET"`

	// File storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
	MaxUploadMB         int    `mapstructure:"MAX_UPLOAD_MB"`

	// Messaging handoff.
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
	StudioEmail    string `mapstructure:"STUDIO_EMAIL"`
	WhatsAppNumber string `mapstructure:"WHATSAPP_NUMBER"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("PUBLIC_URL", "http://localhost:5173")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "digibook")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DRAFT_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DRAFT_TTL_HOURS", 72)
	viper.SetDefault("PAYMENT_GATEWAY", "stripe")
	viper.SetDefault("CURRENCY", "MAD")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("DODO_API_KEY", "")
	viper.SetDefault("DODO_API_URL", "https://api.dodopayments.com")
	viper.SetDefault("DODO_WEBHOOK_SECRET", "")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("CLOUDINARY_FOLDER", "digibook/uploads")
	viper.SetDefault("MAX_UPLOAD_MB", 25)
	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "bookings@digibook.local")
	viper.SetDefault("STUDIO_EMAIL", "")
	viper.SetDefault("WHATSAPP_NUMBER", "")
}

func LoadConfig() {
	// Local development keeps secrets in .env; absence is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// DraftTTL is how long an untouched wizard draft survives in the cache.
func DraftTTL() time.Duration {
	if AppConfig.DraftTTLHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(AppConfig.DraftTTLHours) * time.Hour
}

// MaxUploadBytes bounds a single uploaded file.
func MaxUploadBytes() int64 {
	if AppConfig.MaxUploadMB <= 0 {
		return 25 << 20
	}
	return int64(AppConfig.MaxUploadMB) << 20
}
