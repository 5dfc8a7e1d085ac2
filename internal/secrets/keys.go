// Package secrets resolves API credentials, OS keychain first with an
// environment-variable fallback for headless runs.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app's secrets in the OS keychain.
	KeyringService = "outreach"

	SearchAccount = "serpapi"
	EmailAccount  = "hunter"

	searchEnv = "SERPAPI_KEY"
	emailEnv  = "HUNTER_API_KEY"
)

// SearchAPIKey returns the SerpAPI credential, or "" when none is configured.
// A missing key is not an error: the engine degrades to keyless search.
func SearchAPIKey() string {
	return lookup(SearchAccount, searchEnv)
}

// EmailAPIKey returns the email-finder credential, or "" when none is
// configured. Candidates then ship without addresses.
func EmailAPIKey() string {
	return lookup(EmailAccount, emailEnv)
}

func lookup(account, env string) string {
	// 1) Keyring first (recommended)
	if pw, err := keyring.Get(KeyringService, account); err == nil && strings.TrimSpace(pw) != "" {
		return strings.TrimSpace(pw)
	}
	// 2) Env fallback
	return strings.TrimSpace(os.Getenv(env))
}

func SetKey(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("credential is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func DeleteKey(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
