package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the parts of the config a stage cannot limp along
// without. Filter lists may be empty; the extractor then classifies more
// than it strictly needs to, which is slow but not wrong.
func Validate(cfg Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Mailbox.IMAPHost) == "" {
		errs = append(errs, "mailbox.imap_host is required")
	}
	if cfg.Mailbox.IMAPPort <= 0 || cfg.Mailbox.IMAPPort > 65535 {
		errs = append(errs, "mailbox.imap_port must be 1..65535")
	}
	if strings.TrimSpace(cfg.Mailbox.Username) == "" {
		errs = append(errs, "mailbox.username is required")
	}
	if cfg.Classifier.RequestsPerSecond <= 0 {
		errs = append(errs, "classifier.requests_per_second must be > 0")
	}
	if cfg.Classifier.RetryMax < 0 {
		errs = append(errs, "classifier.retry_max must be >= 0")
	}

	// keyword lists: trim and catch accidental empties
	checkList := func(name string, xs []string) {
		for i, x := range xs {
			if strings.TrimSpace(x) == "" {
				errs = append(errs, fmt.Sprintf("filters.%s[%d] cannot be empty", name, i))
			}
		}
	}
	checkList("application_keywords", cfg.Filters.ApplicationKeywords)
	checkList("blacklist_keywords", cfg.Filters.BlacklistKeywords)
	checkList("rejection_phrases", cfg.Filters.RejectionPhrases)

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
