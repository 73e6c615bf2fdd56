package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode  bool   `env:"TEST_MODE"`
	BindAddress string `env:"BIND_ADDRESS" envDefault:"0.0.0.0:9090"`

	PostgresqlURL string `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL      string `env:"REDIS_URL,notEmpty"`
	RabbitmqURL   string `env:"RABBITMQ_URL,notEmpty"`

	RabbitmqDueExchange string `env:"RABBITMQ_DUE_EXCHANGE" envDefault:"beatwatch"`
	RabbitmqDueQueue    string `env:"RABBITMQ_DUE_QUEUE" envDefault:"reminder-due"`

	// PollInterval is how often the scheduler checks for newly due
	// reminders. LocalTimezone resolves standard mode date and time input.
	PollInterval  time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	LocalTimezone string        `env:"LOCAL_TIMEZONE" envDefault:"Local"`

	DispatchGuardTTL time.Duration `env:"DISPATCH_GUARD_TTL" envDefault:"24h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"us-west-2"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY"`
	EmailSender    string `env:"EMAIL_SENDER"`
	EmailRecipient string `env:"EMAIL_RECIPIENT"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
