// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Mailbox struct {
		IMAPHost string `yaml:"imap_host"`
		IMAPPort int    `yaml:"imap_port"`
		Username string `yaml:"username"`
		Mailbox  string `yaml:"mailbox"`
		FetchMax int    `yaml:"fetch_max"`
	} `yaml:"mailbox"`

	Classifier struct {
		BaseURL           string  `yaml:"base_url"`
		Model             string  `yaml:"model"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		RetryMax          int     `yaml:"retry_max"`
		MaxContentChars   int     `yaml:"max_content_chars"`
	} `yaml:"classifier"`

	Filters struct {
		ApplicationKeywords []string `yaml:"application_keywords"`
		BlacklistKeywords   []string `yaml:"blacklist_keywords"`
		RejectionPhrases    []string `yaml:"rejection_phrases"`
	} `yaml:"filters"`
}

// Default is the baseline config. Load unmarshals the file over it, so
// only keys absent from the file keep their default; an explicit zero in
// the file (e.g. retry_max: 0) survives.
func Default() Config {
	var cfg Config
	cfg.Mailbox.IMAPHost = "imap.gmail.com"
	cfg.Mailbox.IMAPPort = 993
	cfg.Mailbox.Mailbox = "INBOX"
	cfg.Mailbox.FetchMax = 500
	cfg.Classifier.BaseURL = "https://api.openai.com"
	cfg.Classifier.Model = "gpt-4o-mini"
	cfg.Classifier.RequestsPerSecond = 2
	cfg.Classifier.RetryMax = 3
	cfg.Classifier.MaxContentChars = 4000
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
