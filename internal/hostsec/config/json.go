package config

import (
	"encoding/json"
	"os"

	"github.com/oneearth-admin/oeff-docs/internal/flagx"
)

// JsonConfig is the on-disk form of Config. Run switches (dry run,
// regenerate, upload) are command-line only.
type JsonConfig struct {
	HostsPath      string `json:"hosts_path"`
	DatabasePath   string `json:"database_path"`
	HelperBaseURL  string `json:"helper_base_url"`
	FormBaseURL    string `json:"form_base_url"`
	VenueParam     string `json:"venue_param"`
	EmailParam     string `json:"email_param"`
	TokenLength    int    `json:"token_length"`
	TokenMapPath   string `json:"token_map_path"`
	PassphraseEnv  string `json:"passphrase_env"`
	LogLevel       string `json:"log_level"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.HostsPath:      c.HostsPath,
		&config.DatabasePath:   c.DatabasePath,
		&config.HelperBaseURL:  c.HelperBaseURL,
		&config.FormBaseURL:    c.FormBaseURL,
		&config.VenueParam:     c.VenueParam,
		&config.EmailParam:     c.EmailParam,
		&config.TokenMapPath:   c.TokenMapPath,
		&config.PassphraseEnv:  c.PassphraseEnv,
		&config.LogLevel:       c.LogLevel,
		&config.S3AccessKey:    c.S3AccessKey,
		&config.S3SecretKey:    c.S3SecretKey,
		&config.S3Bucket:       c.S3Bucket,
		&config.S3Region:       c.S3Region,
		&config.S3BaseEndpoint: c.S3BaseEndpoint,
	} {
		if v != "" {
			*dst = v
		}
	}
	if c.TokenLength > 0 {
		config.TokenLength = c.TokenLength
	}
}
