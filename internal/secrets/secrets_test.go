package secrets

import (
	"testing"

	"github.com/zalando/go-keyring"

	"jobtrack/internal/config"
)

func TestAPIKeyEnvWins(t *testing.T) {
	keyring.MockInit()
	t.Setenv("OPENAI_API_KEY", "env-key")

	if err := SetAPIKey("ring-key"); err != nil {
		t.Fatal(err)
	}

	got, err := GetAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	if got != "env-key" {
		t.Errorf("GetAPIKey = %q, want env-key", got)
	}
}

func TestAPIKeyRoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := GetAPIKey(); err == nil {
		t.Error("want error when no key is stored")
	}

	if err := SetAPIKey("ring-key"); err != nil {
		t.Fatal(err)
	}
	got, err := GetAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	if got != "ring-key" {
		t.Errorf("GetAPIKey = %q", got)
	}

	if err := DeleteAPIKey(); err != nil {
		t.Fatal(err)
	}
	if _, err := GetAPIKey(); err == nil {
		t.Error("want error after delete")
	}
}

func TestSetAPIKeyRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	if err := SetAPIKey("  "); err == nil {
		t.Error("blank key must be rejected")
	}
}

func TestIMAPPasswordFallsBackToEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv("JOBTRACK_IMAP_PASSWORD", "env-pass")

	got, err := GetIMAPPassword("jobtrack:imap:me@imap.gmail.com")
	if err != nil {
		t.Fatal(err)
	}
	if got != "env-pass" {
		t.Errorf("GetIMAPPassword = %q", got)
	}
}

func TestIMAPPasswordRoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv("JOBTRACK_IMAP_PASSWORD", "")

	account := "jobtrack:imap:me@imap.gmail.com"
	if err := SetIMAPPassword(account, "app-pass"); err != nil {
		t.Fatal(err)
	}
	got, err := GetIMAPPassword(account)
	if err != nil {
		t.Fatal(err)
	}
	if got != "app-pass" {
		t.Errorf("GetIMAPPassword = %q", got)
	}

	if err := DeleteIMAPPassword(account); err != nil {
		t.Fatal(err)
	}
	if _, err := GetIMAPPassword(account); err == nil {
		t.Error("want error after delete")
	}
}

func TestIMAPKeyringAccount(t *testing.T) {
	var cfg config.Config
	cfg.Mailbox.Username = "me@example.com"
	cfg.Mailbox.IMAPHost = "imap.gmail.com"

	if got := IMAPKeyringAccount(cfg); got != "jobtrack:imap:me@example.com@imap.gmail.com" {
		t.Errorf("IMAPKeyringAccount = %q", got)
	}
}
