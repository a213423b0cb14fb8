package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Seed      SeedConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Integrity IntegrityConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type LogConfig struct {
	Level string
}

type SeedConfig struct {
	Enabled bool
}

type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessExpiry time.Duration
}

type AuthConfig struct {
	BcryptCost        int
	MinPasswordLength int
}

type IntegrityConfig struct {
	// StrictLabReports rejects lab reports whose patient does not exist.
	// When false the report is stored with an empty patient name.
	StrictLabReports bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "hospital-records")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_ENABLED", true)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_ACCESS_EXPIRY", "12h")
	v.SetDefault("AUTH_BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("AUTH_MIN_PASSWORD_LENGTH", 6)
	v.SetDefault("INTEGRITY_STRICT_LAB_REPORTS", true)
}

// LoadConfig reads configuration from path (or ".env" when path is empty),
// then lets environment variables override it. A missing default file is not
// an error; every key has a default.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	file := path
	if file == "" {
		file = ".env"
	}
	v.SetConfigFile(file)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if path != "" || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 12 * time.Hour
	}

	bcryptCost := v.GetInt("AUTH_BCRYPT_COST")
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	config := &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Seed: SeedConfig{
			Enabled: v.GetBool("SEED_ENABLED"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Issuer:       v.GetString("APP_NAME"),
			AccessExpiry: accessExpiry,
		},
		Auth: AuthConfig{
			BcryptCost:        bcryptCost,
			MinPasswordLength: v.GetInt("AUTH_MIN_PASSWORD_LENGTH"),
		},
		Integrity: IntegrityConfig{
			StrictLabReports: v.GetBool("INTEGRITY_STRICT_LAB_REPORTS"),
		},
	}

	return config, nil
}
