package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultGithubUsername    = "lsimons-bot"
	defaultGithubAuthorEmail = "bot@leosimons.com"
)

// requiredVars lists the environment variables that must be set before any
// network call is made.
var requiredVars = []string{
	"WORDPRESS_USERNAME",
	"WORDPRESS_APPLICATION_PASSWORD",
	"WORDPRESS_CLIENT_ID",
	"WORDPRESS_CLIENT_SECRET",
	"WORDPRESS_SITE_ID",
	"GITHUB_TOKEN",
	"LLM_BASE_URL",
	"LLM_AUTH_TOKEN",
	"LLM_DEFAULT_MODEL",
}

// Config defines the publish pipeline configuration.
type Config struct {
	WordPress WordPressConfig `yaml:"-"`
	Github    GithubConfig    `yaml:"github"`
	LLM       LLMConfig       `yaml:"-"`
	Gates     GatesConfig     `yaml:"gates"`
}

type WordPressConfig struct {
	Username     string `yaml:"-"`
	AppPassword  string `yaml:"-"`
	ClientID     string `yaml:"-"`
	ClientSecret string `yaml:"-"`
	SiteID       string `yaml:"-"`
}

type GithubConfig struct {
	Token       string `yaml:"-"`
	Username    string `yaml:"username"`
	AuthorEmail string `yaml:"author_email"`
}

type LLMConfig struct {
	BaseURL   string `yaml:"-"`
	AuthToken string `yaml:"-"`
	Model     string `yaml:"-"`
}

// GatesConfig holds the publication thresholds. Zero values mean "use the
// default".
type GatesConfig struct {
	MinCommits    int `yaml:"min_commits"`
	MinLines      int `yaml:"min_lines"`
	CooldownHours int `yaml:"cooldown_hours"`
	WindowDays    int `yaml:"window_days"`
}

// Load reads configuration from the environment, with thresholds and
// identity optionally overridden by a YAML file named in
// BLOGBOT_CONFIG_PATH. Missing required variables are reported together in
// a single error, before any network call happens.
func Load() (Config, error) {
	env, err := validateEnv(requiredVars)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		WordPress: WordPressConfig{
			Username:     env["WORDPRESS_USERNAME"],
			AppPassword:  env["WORDPRESS_APPLICATION_PASSWORD"],
			ClientID:     env["WORDPRESS_CLIENT_ID"],
			ClientSecret: env["WORDPRESS_CLIENT_SECRET"],
			SiteID:       env["WORDPRESS_SITE_ID"],
		},
		Github: GithubConfig{
			Token:       env["GITHUB_TOKEN"],
			Username:    defaultGithubUsername,
			AuthorEmail: defaultGithubAuthorEmail,
		},
		LLM: LLMConfig{
			BaseURL:   env["LLM_BASE_URL"],
			AuthToken: env["LLM_AUTH_TOKEN"],
			Model:     env["LLM_DEFAULT_MODEL"],
		},
		Gates: GatesConfig{
			MinCommits:    5,
			MinLines:      200,
			CooldownHours: 24,
			WindowDays:    7,
		},
	}

	if path := os.Getenv("BLOGBOT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// validateEnv collects the named variables, reporting every missing one.
func validateEnv(names []string) (map[string]string, error) {
	values := make(map[string]string, len(names))
	var missing []string

	for _, name := range names {
		value := os.Getenv(name)
		if value == "" {
			missing = append(missing, name)
			continue
		}
		values[name] = value
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return values, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// Only the yaml-tagged fields can be overridden; secrets stay in the
	// environment.
	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if override.Github.Username != "" {
		cfg.Github.Username = override.Github.Username
	}
	if override.Github.AuthorEmail != "" {
		cfg.Github.AuthorEmail = override.Github.AuthorEmail
	}
	if override.Gates.MinCommits > 0 {
		cfg.Gates.MinCommits = override.Gates.MinCommits
	}
	if override.Gates.MinLines > 0 {
		cfg.Gates.MinLines = override.Gates.MinLines
	}
	if override.Gates.CooldownHours > 0 {
		cfg.Gates.CooldownHours = override.Gates.CooldownHours
	}
	if override.Gates.WindowDays > 0 {
		cfg.Gates.WindowDays = override.Gates.WindowDays
	}

	return nil
}
