// Package secrets resolves search provider credentials, env first with
// the OS keychain as fallback.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups this app's secrets in the OS keychain.
	KeyringService = "internship-engine"

	EnvBraveAPIKey  = "BRAVE_API_KEY"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvGoogleCSEID  = "GOOGLE_CSE_ID"
)

// Get looks up one credential by its env var name: the environment wins,
// then the keychain under the same account name.
func Get(name string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v, nil
	}

	v, err := keyring.Get(KeyringService, name)
	if err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}

	return "", fmt.Errorf("%s not set: export it, add it to .env, or store it with `engine secret set %s`", name, name)
}

// Set stores a credential in the OS keychain.
func Set(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

// Delete removes a credential from the OS keychain.
func Delete(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	return keyring.Delete(KeyringService, name)
}

// BraveKey returns the Brave Search API key.
func BraveKey() (string, error) {
	return Get(EnvBraveAPIKey)
}

// GoogleCreds returns the Google Custom Search API key and engine ID.
func GoogleCreds() (apiKey, cseID string, err error) {
	apiKey, err = Get(EnvGoogleAPIKey)
	if err != nil {
		return "", "", err
	}
	cseID, err = Get(EnvGoogleCSEID)
	if err != nil {
		return "", "", err
	}
	return apiKey, cseID, nil
}
