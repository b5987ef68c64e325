package config

import (
	"errors"
	"fmt"

	"fleet-management/internal/allowance"

	"github.com/spf13/viper"
)

// Config holds every setting the server reads at startup.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	JWTTTLHours  int    `mapstructure:"JWT_TTL_HOURS"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	MigrationsAuto bool `mapstructure:"MIGRATIONS_AUTO"`

	RedisAddr                string `mapstructure:"REDIS_ADDR"`
	RedisPassword            string `mapstructure:"REDIS_PASSWORD"`
	DashboardCacheTTLSeconds int    `mapstructure:"DASHBOARD_CACHE_TTL_SECONDS"`

	// EMAIL_PROVIDER is "ses" or "smtp"; an empty EMAIL_FROM disables email.
	EmailProvider string `mapstructure:"EMAIL_PROVIDER"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`
	AWSRegion     string `mapstructure:"AWS_REGION"`
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`
	SMTPUsername  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`

	LoginRatePerMinute int `mapstructure:"LOGIN_RATE_PER_MINUTE"`

	// Seeds the first ADMIN account when the users table is empty.
	BootstrapAdminUsername string `mapstructure:"BOOTSTRAP_ADMIN_USERNAME"`
	BootstrapAdminPassword string `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`

	MileageRatePerKm       float64 `mapstructure:"MILEAGE_RATE_PER_KM"`
	BonusRatePerHour       float64 `mapstructure:"BONUS_RATE_PER_HOUR"`
	BonusCapAmount         float64 `mapstructure:"BONUS_CAP_AMOUNT"`
	BonusCapThresholdHours float64 `mapstructure:"BONUS_CAP_THRESHOLD_HOURS"`
}

// LoadConfig reads app.env from path (if present) and lets environment
// variables override any value.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config.LoadConfig: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config.LoadConfig.Unmarshal: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("config.LoadConfig: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("config.LoadConfig: JWT_SECRET is required")
	}
	switch cfg.EmailProvider {
	case "ses", "smtp":
	default:
		return cfg, fmt.Errorf("config.LoadConfig: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
	return cfg, nil
}

// AllowancePolicy returns the floating trip pay policy configured for this deployment.
func (c Config) AllowancePolicy() allowance.Policy {
	p := allowance.DefaultPolicy()
	p.MileageRatePerKm = c.MileageRatePerKm
	p.BonusRatePerHour = c.BonusRatePerHour
	p.BonusCapAmount = c.BonusCapAmount
	p.BonusCapThresholdHours = c.BonusCapThresholdHours
	return p
}

func setDefaults(v *viper.Viper) {
	d := allowance.DefaultPolicy()

	// keys without a default are invisible to Unmarshal under AutomaticEnv
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	v.SetDefault("MIGRATIONS_AUTO", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("DASHBOARD_CACHE_TTL_SECONDS", 60)
	v.SetDefault("AWS_REGION", "ap-south-1")
	v.SetDefault("EMAIL_PROVIDER", "ses")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
	v.SetDefault("MILEAGE_RATE_PER_KM", d.MileageRatePerKm)
	v.SetDefault("BONUS_RATE_PER_HOUR", d.BonusRatePerHour)
	v.SetDefault("BONUS_CAP_AMOUNT", d.BonusCapAmount)
	v.SetDefault("BONUS_CAP_THRESHOLD_HOURS", d.BonusCapThresholdHours)
}
