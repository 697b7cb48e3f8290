package extract

import (
	"testing"

	"jobtrack/internal/config"
)

func filterConfig() config.Config {
	var cfg config.Config
	cfg.Filters.ApplicationKeywords = []string{"application", "applied", "interview"}
	cfg.Filters.BlacklistKeywords = []string{"job alert", "newsletter", "unsubscribe"}
	cfg.Filters.RejectionPhrases = []string{"regret to inform", "move forward with other candidates"}
	return cfg
}

func TestShouldClassify(t *testing.T) {
	cfg := filterConfig()

	tests := []struct {
		name    string
		subject string
		snippet string
		keep    bool
		reason  string
	}{
		{"application keyword", "Your application to Acme", "", true, ""},
		{"blacklist wins over keyword", "Job Alert: 10 new applications near you", "", false, "blacklist"},
		{"rejection overrides blacklist", "Your application - unsubscribe below",
			"We regret to inform you that we will not proceed", true, "rejection"},
		{"no match", "Lunch on Friday?", "see you there", false, "no_keyword_match"},
		{"case insensitive", "INTERVIEW invitation", "", true, ""},
		{"snippet matches too", "Quick update", "thanks for the interview yesterday", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, reason := ShouldClassify(cfg, tt.subject, tt.snippet)
			if keep != tt.keep || reason != tt.reason {
				t.Errorf("ShouldClassify(%q, %q) = (%v, %q), want (%v, %q)",
					tt.subject, tt.snippet, keep, reason, tt.keep, tt.reason)
			}
		})
	}
}

func TestShouldClassifyEmptyAllowlist(t *testing.T) {
	cfg := filterConfig()
	cfg.Filters.ApplicationKeywords = nil

	keep, _ := ShouldClassify(cfg, "Anything at all", "")
	if !keep {
		t.Error("empty allowlist must pass everything not blacklisted")
	}

	keep, reason := ShouldClassify(cfg, "Weekly newsletter", "")
	if keep || reason != "blacklist" {
		t.Errorf("blacklist must still apply: keep=%v reason=%q", keep, reason)
	}
}
