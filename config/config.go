package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Payout     PayoutConfig
	LedgerPay  LedgerPayConfig
	Meet       MeetConfig
	Calendar   CalendarConfig
	Cloudinary CloudinaryConfig
	Firebase   FirebaseConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// PayoutConfig drives the settlement math. FeeRate is the platform's cut of
// the post-referral amount; MaxReferralDepth bounds the chain walk.
type PayoutConfig struct {
	FeeRate          float64
	MaxReferralDepth int
	Currency         string
	OfferExpiry      time.Duration
}

// LedgerPayConfig for the payout transfer rail.
type LedgerPayConfig struct {
	BaseURL  string
	Email    string
	Password string
}

type MeetConfig struct {
	BaseURL string
	APIKey  string
}

type CalendarConfig struct {
	BaseURL string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8086"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envOr("DATABASE_DSN", "brewhire:brewhire@tcp(localhost:3306)/brewhire?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  envOr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envOr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "brewhire",
		},
		Payout: PayoutConfig{
			FeeRate:          envFloatOr("PLATFORM_FEE_RATE", 0.05),
			MaxReferralDepth: 10,
			Currency:         envOr("PAYOUT_CURRENCY", "USD"),
			OfferExpiry:      30 * 24 * time.Hour,
		},
		LedgerPay: LedgerPayConfig{
			BaseURL:  envOr("LEDGERPAY_BASE_URL", "https://api.ledgerpay.io"),
			Email:    os.Getenv("LEDGERPAY_EMAIL"),
			Password: os.Getenv("LEDGERPAY_PASSWORD"),
		},
		Meet: MeetConfig{
			BaseURL: envOr("ROOMKIT_BASE_URL", "https://api.roomkit.dev"),
			APIKey:  os.Getenv("ROOMKIT_API_KEY"),
		},
		Calendar: CalendarConfig{
			BaseURL: envOr("CALENDAR_BASE_URL", "https://calendar-api.brewhire.io"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f < 1 {
			return f
		}
	}
	return fallback
}
