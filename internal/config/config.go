package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		BaseURL        string   `yaml:"base_url" env:"SERVER_BASE_URL"`
		StoragePath    string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		MaxUploadBytes int64    `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES"`
		CORSOrigins    []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
		MigrationsDir  string   `yaml:"migrations_dir" env:"SERVER_MIGRATIONS_DIR"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER"` // local or s3
		S3     struct {
			Bucket    string `yaml:"bucket" env:"S3_BUCKET"`
			Region    string `yaml:"region" env:"S3_REGION"`
			Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
			AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
			SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
			PublicURL string `yaml:"public_url" env:"S3_PUBLIC_URL"`
		} `yaml:"s3"`
	} `yaml:"storage"`

	WhatsApp struct {
		Enabled              bool     `yaml:"enabled" env:"WHATSAPP_NOTIFICATIONS_ENABLED"`
		SendApproval         bool     `yaml:"send_approval" env:"WHATSAPP_SEND_APPROVAL"`
		SendRejection        bool     `yaml:"send_rejection" env:"WHATSAPP_SEND_REJECTION"`
		AccountSID           string   `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
		AuthToken            string   `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
		FromNumber           string   `yaml:"from_number" env:"TWILIO_WHATSAPP_NUMBER"`
		TemplateSID          string   `yaml:"template_sid" env:"TWILIO_ORDER_TEMPLATE_SID"`
		ApprovalTemplateSID  string   `yaml:"approval_template_sid" env:"TWILIO_APPROVAL_TEMPLATE_SID"`
		RejectionTemplateSID string   `yaml:"rejection_template_sid" env:"TWILIO_REJECTION_TEMPLATE_SID"`
		SandboxMode          bool     `yaml:"sandbox_mode" env:"WHATSAPP_SANDBOX_MODE"`
		TestNumbers          []string `yaml:"test_numbers" env:"WHATSAPP_TEST_NUMBERS"`
		Timeout              string   `yaml:"timeout" env:"WHATSAPP_TIMEOUT"`
	} `yaml:"whatsapp"`

	Institution struct {
		Name                  string  `yaml:"name" env:"INSTITUTION_NAME"`
		RegistrationFeeAmount float64 `yaml:"registration_fee_amount" env:"REGISTRATION_FEE_AMOUNT"`
		RegistrationFeeCurr   string  `yaml:"registration_fee_currency" env:"REGISTRATION_FEE_CURRENCY"`
		WhatsAppNumber        string  `yaml:"whatsapp_number" env:"INSTITUTION_WHATSAPP_NUMBER"`
		Address               string  `yaml:"address" env:"INSTITUTION_ADDRESS"`
		Email                 string  `yaml:"email" env:"INSTITUTION_EMAIL"`
		Website               string  `yaml:"website" env:"INSTITUTION_WEBSITE"`
	} `yaml:"institution"`

	Mail struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT"`
		Username string `yaml:"username" env:"SMTP_USERNAME"`
		Password string `yaml:"password" env:"SMTP_PASSWORD"`
		From     string `yaml:"from" env:"SMTP_FROM"`
	} `yaml:"mail"`

	Admin struct {
		Email    string `yaml:"email" env:"ADMIN_EMAIL"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	} `yaml:"admin"`

	Courses struct {
		KeyMapping map[string]string `yaml:"key_mapping"`
	} `yaml:"courses"`
}

// DefaultCourseKeyMapping maps application form keys to course title fragments.
func DefaultCourseKeyMapping() map[string]string {
	return map[string]string{
		"automotive_engine_repairer":       "Automotive Engine Repairer",
		"automotive_clutch_brake_repairer": "Automotive Clutch and Brake Repairer",
		"automotive_suspension_fitter":     "Automotive Suspension Fitter",
		"automotive_workshop_assistant":    "Automotive Workshop Assistant",
	}
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env is optional; variables already set in the process win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if len(config.Courses.KeyMapping) == 0 {
		config.Courses.KeyMapping = DefaultCourseKeyMapping()
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:8080"
	config.Server.StoragePath = "./media"
	config.Server.MaxUploadBytes = 100 << 20
	config.Server.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	config.Server.MigrationsDir = "migrations"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "bathudi"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "bathudi-admissions"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Storage.Driver = "local"

	config.WhatsApp.Enabled = true
	config.WhatsApp.SendApproval = true
	config.WhatsApp.SendRejection = true
	config.WhatsApp.FromNumber = "whatsapp:+14155238886"
	config.WhatsApp.TemplateSID = "HX350d429d32e64a552466cafece95f3c"
	config.WhatsApp.Timeout = "15s"

	config.Institution.Name = "Bathudi Automotive Technical Center"
	config.Institution.RegistrationFeeAmount = 661.25
	config.Institution.RegistrationFeeCurr = "ZAR"
	config.Institution.WhatsAppNumber = "+27689176294"
	config.Institution.Address = "123 Training Street, Johannesburg, South Africa"
	config.Institution.Email = "info@bathudi.co.za"
	config.Institution.Website = "https://bathudi.co.za"

	config.Mail.Port = 587
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.WhatsApp.Timeout); err != nil {
		return fmt.Errorf("invalid whatsapp timeout format: %w", err)
	}

	switch config.Storage.Driver {
	case "local":
		if config.Server.StoragePath == "" {
			return fmt.Errorf("storage path is required for the local storage driver")
		}
	case "s3":
		if config.Storage.S3.Bucket == "" || config.Storage.S3.Region == "" {
			return fmt.Errorf("s3 bucket and region are required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
