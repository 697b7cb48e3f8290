package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"jobtrack/internal/config"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "jobtrack"

	apiKeyAccount = "openai-api-key"
)

// GetAPIKey resolves the classification-service API key. Environment wins
// so CI and one-off runs can override whatever is in the keychain.
func GetAPIKey() (string, error) {
	if k := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); k != "" {
		return k, nil
	}
	pw, err := keyring.Get(KeyringService, apiKeyAccount)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	return "", errors.New("API key not found (set OPENAI_API_KEY or store it with: jobtrack secret set api-key)")
}

func SetAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, apiKeyAccount, key)
}

func DeleteAPIKey() error {
	return keyring.Delete(KeyringService, apiKeyAccount)
}

// GetIMAPPassword looks in the keychain first, then the environment.
// Gmail needs an app password here (2FA accounts cannot use the login one).
func GetIMAPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	if pw := strings.TrimSpace(os.Getenv("JOBTRACK_IMAP_PASSWORD")); pw != "" {
		return pw, nil
	}
	return "", errors.New("IMAP password not found (store it with: jobtrack secret set imap, or set JOBTRACK_IMAP_PASSWORD)")
}

func SetIMAPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteIMAPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func IMAPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"jobtrack:imap:%s@%s",
		cfg.Mailbox.Username,
		cfg.Mailbox.IMAPHost,
	)
}
