package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port                string `envconfig:"PORT" default:"8080"`
	Environment         string `envconfig:"ENV" default:"development"`
	DBConnectionString  string `envconfig:"DATABASE_URL" required:"true"`
	OpenAIAPIKey        string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel         string `envconfig:"OPENAI_MODEL" default:"gpt-4.1-mini"`
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`

	// ShareBaseURL prefixes public share links returned by the API.
	// Empty means relative links (the client resolves them).
	ShareBaseURL string `envconfig:"SHARE_BASE_URL"`

	// Feature flags consumed by the presentation layer only.
	FFStudy  bool `envconfig:"FF_STUDY" default:"false"`
	FFRAG    bool `envconfig:"FF_RAG" default:"false"`
	FFExport bool `envconfig:"FF_EXPORT" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
