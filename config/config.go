package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OTP        OTPConfig
	Cloudinary CloudinaryConfig
	Firebase   FirebaseConfig
	Admin      AdminConfig
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
	Secret string
	Expiry time.Duration
	Issuer string
}

// OTPConfig selects the OTP provider. Provider is "stub" or "otpdev".
type OTPConfig struct {
	Provider     string
	APIURL       string
	AppID        string
	ClientID     string
	ClientSecret string
	Channel      string
	// Stub only: a fixed phone/code pair accepted without a generated order.
	TestPhone string
	TestCode  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

// AdminConfig seeds the first admin account on an empty database.
type AdminConfig struct {
	Phone    string
	Name     string
	Password string
}

func (c *Config) IsProduction() bool { return c.Server.Env == "production" }

// Load reads .env when present, then builds the config from defaults and environment overrides.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}
	env := getenv("APP_ENV", "development")
	otpProvider := "stub"
	if env == "production" {
		otpProvider = "otpdev"
	}
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "5000"),
			Env:          env,
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "root:@tcp(localhost:3306)/athar_db?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			Secret: getenv("JWT_SECRET", "change-me-in-production"),
			Expiry: getDuration("JWT_EXPIRE", 7*24*time.Hour),
			Issuer: "athar",
		},
		OTP: OTPConfig{
			Provider:     getenv("OTP_PROVIDER", otpProvider),
			APIURL:       getenv("OTP_DEV_API_URL", "https://api.otp.dev/v1"),
			AppID:        os.Getenv("OTP_DEV_APP_ID"),
			ClientID:     os.Getenv("OTP_DEV_CLIENT_ID"),
			ClientSecret: os.Getenv("OTP_DEV_CLIENT_SECRET"),
			Channel:      getenv("OTP_CHANNEL", "sms"),
			TestPhone:    os.Getenv("TEST_PHONE_NUMBER"),
			TestCode:     os.Getenv("TEST_OTP_CODE"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    getenv("CLOUDINARY_FOLDER", "Athar"),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		},
		Admin: AdminConfig{
			Phone:    os.Getenv("ADMIN_PHONE"),
			Name:     getenv("ADMIN_NAME", "Admin"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getDuration accepts Go durations ("15m") and day counts ("7d").
func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if n := len(v); n > 1 && v[n-1] == 'd' {
		if days, err := strconv.Atoi(v[:n-1]); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
