package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Credential delivery modes.
const (
	CredentialDeliveryNotification = "notification"
	CredentialDeliverySMTP         = "smtp"
)

// Config holds application configuration.
type Config struct {
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Approval policy
	ApprovalRateThreshold decimal.Decimal
	CFOOverrideEnabled    bool
	HighValueThreshold    decimal.Decimal

	// Credential delivery for newly added users
	CredentialDelivery string
	SMTP               SMTPConfig

	LoginRateLimit     string
	CORSAllowedOrigins []string
	PosthogAPIKey      string

	// Pending approval reminders; an empty schedule disables the job.
	ReminderSchedule   string
	ReminderPendingAge time.Duration
}

// SMTPConfig holds the out-of-band mail settings.
type SMTPConfig struct {
	Host       string `mapstructure:"SMTP_HOST"`
	Port       string `mapstructure:"SMTP_PORT"`
	User       string `mapstructure:"SMTP_USER"`
	Password   string `mapstructure:"SMTP_PASSWORD"`
	From       string `mapstructure:"SMTP_FROM"`
	TLSEnabled bool   `mapstructure:"SMTP_TLS"`

	// Timeout bounds one whole delivery: dial, handshake and submission.
	Timeout time.Duration `mapstructure:"SMTP_TIMEOUT"`
}

const (
	defaultJWTSecret          = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer          = "expense-management-app"
	defaultJWTExpiry          = time.Hour
	defaultRateThreshold      = "60"
	defaultHighValueThreshold = "1000"
	defaultReminderAge        = 48 * time.Hour
	defaultSMTPTimeout        = 30 * time.Second
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("APPROVAL_RATE_THRESHOLD", defaultRateThreshold)
	v.SetDefault("CFO_OVERRIDE_ENABLED", true)
	v.SetDefault("HIGH_VALUE_THRESHOLD", defaultHighValueThreshold)
	v.SetDefault("CREDENTIAL_DELIVERY", CredentialDeliveryNotification)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("SMTP_TLS", false)
	v.SetDefault("SMTP_TIMEOUT", "30s")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")
	v.SetDefault("REMINDER_PENDING_AGE", "48h")

	// Environment variables override defaults and .env values.
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", defaultJWTExpiry)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
	}

	cfg.ApprovalRateThreshold = parseDecimal(v, "APPROVAL_RATE_THRESHOLD", defaultRateThreshold)
	cfg.CFOOverrideEnabled = v.GetBool("CFO_OVERRIDE_ENABLED")
	cfg.HighValueThreshold = parseDecimal(v, "HIGH_VALUE_THRESHOLD", defaultHighValueThreshold)

	cfg.CredentialDelivery = strings.ToLower(v.GetString("CREDENTIAL_DELIVERY"))
	switch cfg.CredentialDelivery {
	case CredentialDeliveryNotification, CredentialDeliverySMTP:
	default:
		log.Printf("Warning: Invalid value for CREDENTIAL_DELIVERY ('%s'). Defaulting to %s.\n", cfg.CredentialDelivery, CredentialDeliveryNotification)
		cfg.CredentialDelivery = CredentialDeliveryNotification
	}
	cfg.SMTP = SMTPConfig{
		Host:       v.GetString("SMTP_HOST"),
		Port:       v.GetString("SMTP_PORT"),
		User:       v.GetString("SMTP_USER"),
		Password:   v.GetString("SMTP_PASSWORD"),
		From:       v.GetString("SMTP_FROM"),
		TLSEnabled: v.GetBool("SMTP_TLS"),
		Timeout:    parseDuration(v, "SMTP_TIMEOUT", defaultSMTPTimeout),
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}
	if cfg.CredentialDelivery == CredentialDeliverySMTP && cfg.SMTP.Host == "" {
		log.Println("Warning: CREDENTIAL_DELIVERY is smtp but SMTP_HOST is not set. Credentials will not be delivered.")
	}

	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")

	origins := v.GetString("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		origins = v.GetString("FRONTEND_BASE_URL")
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")

	cfg.ReminderSchedule = strings.TrimSpace(v.GetString("REMINDER_SCHEDULE"))
	cfg.ReminderPendingAge = parseDuration(v, "REMINDER_PENDING_AGE", defaultReminderAge)

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func parseDecimal(v *viper.Viper, key string, fallback string) decimal.Decimal {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return decimal.RequireFromString(fallback)
	}
	return d
}
