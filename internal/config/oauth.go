package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// oauthClientFileName is the desktop client secret downloaded from Google Cloud.
// Only syncRoster and publishRoster read it.
const oauthClientFileName = "oauthClient.json"

// OAuthClientConfig mirrors the "installed app" client secret JSON
type OAuthClientConfig struct {
	Installed OAuthInstalled `json:"installed" validate:"required"`
}

type OAuthInstalled struct {
	ClientID                string   `json:"client_id" validate:"required"`
	ProjectID               string   `json:"project_id" validate:"required"`
	AuthURI                 string   `json:"auth_uri" validate:"required,url"`
	TokenURI                string   `json:"token_uri" validate:"required,url"`
	AuthProviderX509CertURL string   `json:"auth_provider_x509_cert_url" validate:"required,url"`
	ClientSecret            string   `json:"client_secret" validate:"required"`
	RedirectURIs            []string `json:"redirect_uris" validate:"required,min=1,dive,uri"`
}

// LoadOAuthClientWithEnv finds oauthClient.<env>.json next to the roster config
func LoadOAuthClientWithEnv(env string) (*OAuthClientConfig, error) {
	path, err := locate(envFileName(oauthClientFileName, env))
	if err != nil {
		return nil, fmt.Errorf("failed to find oauth client file for env %q: %w", env, err)
	}

	return LoadOAuthClientFromPath(path)
}

func LoadOAuthClientFromPath(path string) (*OAuthClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}

	var client OAuthClientConfig
	if err := json.Unmarshal(data, &client); err != nil {
		return nil, fmt.Errorf("failed to parse oauth client file %s: %w", path, err)
	}

	if err := ValidateOAuthClient(&client); err != nil {
		return nil, err
	}

	return &client, nil
}

// ValidateOAuthClient checks the client secret has every field the token exchange needs
func ValidateOAuthClient(client *OAuthClientConfig) error {
	if err := validate.Struct(client); err != nil {
		return fmt.Errorf("oauth client validation failed: %w", err)
	}
	return nil
}
