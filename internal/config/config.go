package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB int64         `mapstructure:"MAX_UPLOAD_MB"`
	UploadDir       string        `mapstructure:"UPLOAD_DIR"`
	AdminUsername   string        `mapstructure:"ADMIN_USERNAME"`
	AdminPassword   string        `mapstructure:"ADMIN_PASSWORD"`
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure    bool          `mapstructure:"COOKIE_SECURE"`

	GroqAPIKey        string `mapstructure:"GROQ_API_KEY"`
	WhisperModel      string `mapstructure:"WHISPER_MODEL"`
	OpenRouterAPIKey  string `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `mapstructure:"OPENROUTER_BASE_URL"`
	ExtractorModel    string `mapstructure:"EXTRACTOR_MODEL"`
	AssistantModel    string `mapstructure:"ASSISTANT_MODEL"`

	GeocodeBaseURL   string `mapstructure:"GEOCODE_BASE_URL"`
	GeocodeUserAgent string `mapstructure:"GEOCODE_USER_AGENT"`

	AIRateRPM int `mapstructure:"AI_RATE_RPM"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("WHISPER_MODEL", "whisper-large-v3")
	v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("EXTRACTOR_MODEL", "meta-llama/llama-3.1-8b-instruct")
	v.SetDefault("ASSISTANT_MODEL", "meta-llama/llama-3.1-8b-instruct")
	v.SetDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODE_USER_AGENT", "jantavoice-backend")
	v.SetDefault("AI_RATE_RPM", 30)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
