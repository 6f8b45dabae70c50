package authapi

import (
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// Environment names the process can run under.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config is the immutable process configuration, parsed once at startup
// and passed explicitly to the token service, mailer and controller.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Addr        string `env:"HTTP_ADDR" envDefault:":3000"`
	JWTSecret   string `env:"JWT_SECRET"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"file:auth.db"`
	AppURL      string `env:"APP_URL" envDefault:"http://localhost:3000"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"25"`
	EmailFrom    string `env:"EMAIL_FROM"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

// LoadConfig parses the environment and fails fast on anything missing.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "validate configuration")
	}

	return cfg, nil
}

// Validate enforces the eager checks the process refuses to start
// without. Mail settings are only required outside the test
// environment, where delivery is a noop.
func (c Config) Validate() error {
	fields := []*validation.FieldRules{
		validation.Field(&c.Env, validation.Required, validation.In(
			EnvDevelopment, EnvTest, EnvProduction,
		)),
		validation.Field(&c.JWTSecret, validation.Required),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.DatabaseDSN, validation.Required),
	}

	if !c.IsTest() {
		fields = append(fields,
			validation.Field(&c.SMTPHost, validation.Required),
			validation.Field(&c.EmailFrom, validation.Required),
		)
	}

	return validation.ValidateStruct(&c, fields...)
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c Config) IsTest() bool {
	return c.Env == EnvTest
}
