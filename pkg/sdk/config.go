package sdk

import (
	"errors"
	"os"
	"strings"
)

// ClientConfig holds the platform project credentials.
type ClientConfig struct {
	ProjectKey   string
	ClientId     string
	ClientSecret string
	AuthUrl      string
	ApiUrl       string
	Scopes       []string
}

var ErrMissingCredentials = errors.New("sdk: project key, client id and client secret are required")

// ConfigFromEnv reads CTP_PROJECT_KEY, CTP_CLIENT_ID, CTP_CLIENT_SECRET,
// CTP_AUTH_URL, CTP_API_URL and the space separated CTP_SCOPES.
func ConfigFromEnv() (ClientConfig, error) {
	cfg := ClientConfig{
		ProjectKey:   os.Getenv("CTP_PROJECT_KEY"),
		ClientId:     os.Getenv("CTP_CLIENT_ID"),
		ClientSecret: os.Getenv("CTP_CLIENT_SECRET"),
		AuthUrl:      "https://auth.europe-west1.gcp.commercetools.com",
		ApiUrl:       "https://api.europe-west1.gcp.commercetools.com",
	}
	if v, ok := os.LookupEnv("CTP_AUTH_URL"); ok && v != "" {
		cfg.AuthUrl = v
	}
	if v, ok := os.LookupEnv("CTP_API_URL"); ok && v != "" {
		cfg.ApiUrl = v
	}
	if v, ok := os.LookupEnv("CTP_SCOPES"); ok {
		cfg.Scopes = strings.Fields(v)
	}
	return cfg, cfg.Validate()
}

func (c ClientConfig) Validate() error {
	if c.ProjectKey == "" || c.ClientId == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (c ClientConfig) scopes() []string {
	if len(c.Scopes) > 0 {
		return c.Scopes
	}
	return []string{"view_products:" + c.ProjectKey, "view_categories:" + c.ProjectKey}
}
