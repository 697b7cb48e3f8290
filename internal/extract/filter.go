package extract

import (
	"strings"

	"jobtrack/internal/config"
)

// ShouldClassify is the cheap textual gate in front of the classifier.
// Rejection wording is checked first: rejection emails read a lot like
// marketing ("thank you for applying...") and the blacklist would
// otherwise eat them.
func ShouldClassify(cfg config.Config, subject, snippet string) (keep bool, reason string) {
	text := strings.ToLower(subject + " " + snippet)

	if containsAny(text, cfg.Filters.RejectionPhrases) {
		return true, "rejection"
	}
	if containsAny(text, cfg.Filters.BlacklistKeywords) {
		return false, "blacklist"
	}

	// Allowlist: if empty, everything not blacklisted goes through.
	if len(cfg.Filters.ApplicationKeywords) == 0 {
		return true, ""
	}
	if containsAny(text, cfg.Filters.ApplicationKeywords) {
		return true, ""
	}
	return false, "no_keyword_match"
}

func containsAny(text string, any []string) bool {
	for _, a := range any {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if strings.Contains(text, a) {
			return true
		}
	}
	return false
}
