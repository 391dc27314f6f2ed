package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Images    ImagesConfig
	WhatsApp  WhatsAppConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port        int
	Environment string
	CORSOrigin  string
}

// StorageConfig selects the order store backend. "file" keeps orders in a
// single JSON array file; "mysql" uses the Database settings below.
type StorageConfig struct {
	Driver   string
	DataFile string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type ImagesConfig struct {
	UploadDir      string
	PublicPath     string
	MaxUploadBytes int64
}

type WhatsAppConfig struct {
	APIBase        string
	PhoneNumberID  string
	AccessToken    string
	AdminRecipient string
	Timeout        time.Duration
}

// AuthConfig holds the shared secret for protected routes. An empty secret
// disables the gate entirely.
type AuthConfig struct {
	OrderSecret string
}

type RateLimitConfig struct {
	RequestLimit int
	AdminLimit   int
	WindowLength time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("DATA_FILE", "data/orders.json")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "vitrine")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "vitrine")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("UPLOAD_DIR", "data/uploads")
	viper.SetDefault("UPLOAD_PUBLIC_PATH", "/uploads")
	viper.SetDefault("MAX_UPLOAD_BYTES", 5*1024*1024)
	viper.SetDefault("WHATSAPP_API_BASE", "https://graph.facebook.com/v19.0")
	viper.SetDefault("WHATSAPP_PHONE_NUMBER_ID", "")
	viper.SetDefault("WHATSAPP_ACCESS_TOKEN", "")
	viper.SetDefault("WHATSAPP_ADMIN_RECIPIENT", "")
	viper.SetDefault("WHATSAPP_TIMEOUT", "15s")
	viper.SetDefault("ORDER_SECRET", "")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_ADMIN_REQUESTS", 30)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	whatsappTimeout, err := time.ParseDuration(viper.GetString("WHATSAPP_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	rateWindow, err := time.ParseDuration(viper.GetString("RATE_LIMIT_WINDOW"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        viper.GetInt("SERVER_PORT"),
			Environment: viper.GetString("ENVIRONMENT"),
			CORSOrigin:  viper.GetString("CORS_ORIGIN"),
		},
		Storage: StorageConfig{
			Driver:   viper.GetString("STORAGE_DRIVER"),
			DataFile: viper.GetString("DATA_FILE"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Images: ImagesConfig{
			UploadDir:      viper.GetString("UPLOAD_DIR"),
			PublicPath:     viper.GetString("UPLOAD_PUBLIC_PATH"),
			MaxUploadBytes: viper.GetInt64("MAX_UPLOAD_BYTES"),
		},
		WhatsApp: WhatsAppConfig{
			APIBase:        viper.GetString("WHATSAPP_API_BASE"),
			PhoneNumberID:  viper.GetString("WHATSAPP_PHONE_NUMBER_ID"),
			AccessToken:    viper.GetString("WHATSAPP_ACCESS_TOKEN"),
			AdminRecipient: viper.GetString("WHATSAPP_ADMIN_RECIPIENT"),
			Timeout:        whatsappTimeout,
		},
		Auth: AuthConfig{
			OrderSecret: viper.GetString("ORDER_SECRET"),
		},
		RateLimit: RateLimitConfig{
			RequestLimit: viper.GetInt("RATE_LIMIT_REQUESTS"),
			AdminLimit:   viper.GetInt("RATE_LIMIT_ADMIN_REQUESTS"),
			WindowLength: rateWindow,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}
