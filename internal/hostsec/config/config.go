// Package config handles configuration for the host security tool.
package config

import "github.com/oneearth-admin/oeff-docs/internal/credentials"

// DefaultPassphraseEnv names the environment variable holding the store
// passphrase. When it is empty the passphrase is read from the terminal.
const DefaultPassphraseEnv = "HOSTSEC_PASSPHRASE"

// Config holds settings for one reconciliation run.
type Config struct {
	HostsPath     string
	DatabasePath  string
	HelperBaseURL string
	FormBaseURL   string
	VenueParam    string
	EmailParam    string
	TokenLength   int
	TokenMapPath  string
	PassphraseEnv string
	LogLevel      string
	DryRun        bool
	Regenerate    bool
	Upload        bool

	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

func (c *Config) LoadDefaults() {
	c.HostsPath = "hosts.csv"
	c.DatabasePath = "host-security.db"
	c.HelperBaseURL = credentials.DefaultHelperBaseURL
	c.FormBaseURL = credentials.DefaultFormBaseURL
	c.VenueParam = credentials.DefaultVenueParam
	c.EmailParam = credentials.DefaultEmailParam
	c.TokenLength = credentials.DefaultTokenLength
	c.TokenMapPath = "token-map.json"
	c.PassphraseEnv = DefaultPassphraseEnv
	c.LogLevel = "info"
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3Bucket = "oeff-exports"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// ReconcileOptions maps the URL settings onto credentials.Options.
func (c *Config) ReconcileOptions() credentials.Options {
	return credentials.Options{
		HelperBaseURL: c.HelperBaseURL,
		FormBaseURL:   c.FormBaseURL,
		VenueParam:    c.VenueParam,
		EmailParam:    c.EmailParam,
		Regenerate:    c.Regenerate,
	}
}

// LoadConfig applies defaults, the JSON file named by -c/-config, and
// finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
