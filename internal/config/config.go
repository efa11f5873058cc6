// Package config reads the configuration of the backend from the
// environment. A .env file in the working directory is loaded first
// if it exists.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// MinSecretLength is the minimum length of JWT_SECRET in bytes.
const MinSecretLength = 32

var (
	ErrAPIURLRequired     = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid      = errors.New("environment variable API_URL must be a valid URL")
	ErrSecretRequired     = errors.New("environment variable JWT_SECRET must be set")
	ErrSecretTooShort     = fmt.Errorf("environment variable JWT_SECRET must be at least %d bytes long", MinSecretLength)
	ErrInvalidBcryptCost  = fmt.Errorf("environment variable BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	ErrInvalidTokenTTL    = errors.New("environment variable TOKEN_TTL must be a positive duration")
	ErrIncompleteDatabase = errors.New("environment variables DB_USER and DB_NAME must be set when DB_HOST is set")
)

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// Path is the SQLite database file, used when Host is empty
	Path string
}

// Postgres returns true if a PostgreSQL server is configured.
func (d Database) Postgres() bool {
	return d.Host != ""
}

// DSN returns the key/value connection string for PostgreSQL.
func (d Database) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Name, d.SSLMode)
	if d.Password != "" {
		dsn = fmt.Sprintf("%s password=%s", dsn, d.Password)
	}
	return dsn
}

type Auth struct {
	Secret     string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

type Config struct {
	APIURL           string
	Port             int
	GinMode          string
	LogFormat        string
	CORSAllowOrigins []string
	EnablePprof      bool
	Database         Database
	Auth             Auth
}

// URL returns the parsed API URL. Validate must have succeeded.
func (c Config) URL() *url.URL {
	u, _ := url.Parse(c.APIURL)
	return u
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "data/flite.db")
	v.SetDefault("JWT_ISSUER", "flite")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("ENABLE_PPROF", false)
}

// Load reads the configuration. It does not validate it, use Validate for that.
func Load() Config {
	err := godotenv.Load()
	if err == nil {
		log.Debug().Msg("Loaded environment from .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	return Config{
		APIURL:           strings.TrimSuffix(v.GetString("API_URL"), "/"),
		Port:             v.GetInt("PORT"),
		GinMode:          v.GetString("GIN_MODE"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		CORSAllowOrigins: strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
		EnablePprof:      v.GetBool("ENABLE_PPROF"),
		Database: Database{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			Path:     v.GetString("DB_PATH"),
		},
		Auth: Auth{
			Secret:     v.GetString("JWT_SECRET"),
			Issuer:     v.GetString("JWT_ISSUER"),
			TokenTTL:   v.GetDuration("TOKEN_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
	}
}

// Validate checks the configuration and returns all problems found.
func (c Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, ErrAPIURLRequired)
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ErrAPIURLInvalid)
	}

	if c.Auth.Secret == "" {
		errs = append(errs, ErrSecretRequired)
	} else if len(c.Auth.Secret) < MinSecretLength {
		errs = append(errs, ErrSecretTooShort)
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, ErrInvalidBcryptCost)
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, ErrInvalidTokenTTL)
	}

	if c.Database.Postgres() && (c.Database.User == "" || c.Database.Name == "") {
		errs = append(errs, ErrIncompleteDatabase)
	}

	return errors.Join(errs...)
}
