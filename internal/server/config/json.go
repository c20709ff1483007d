package config

import (
	"encoding/json"
	"os"

	"github.com/oneearth-admin/oeff-docs/internal/flagx"
	"github.com/oneearth-admin/oeff-docs/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "5s" or
// integer nanoseconds. Absent keys leave the current value untouched.
type JsonConfig struct {
	Mode           string          `json:"mode"`
	HTTPAddr       string          `json:"http_addr"`
	DatabaseDSN    string          `json:"database_dsn"`
	RedisURL       string          `json:"redis_url"`
	QueueName      string          `json:"queue_name"`
	PopTimeout     *timex.Duration `json:"pop_timeout"`
	SecretKey      string          `json:"secret_key"`
	TokenValidity  *timex.Duration `json:"token_validity"`
	TimeZone       string          `json:"time_zone"`
	IDPrefix       string          `json:"id_prefix"`
	IDWidth        int             `json:"id_width"`
	SchemaFile     string          `json:"schema_file"`
	LogLevel       string          `json:"log_level"`
	ExportPath     string          `json:"export_path"`
	S3AccessKey    string          `json:"s3_access_key"`
	S3SecretKey    string          `json:"s3_secret_key"`
	S3Bucket       string          `json:"s3_bucket"`
	S3Region       string          `json:"s3_region"`
	S3BaseEndpoint string          `json:"s3_base_endpoint"`
}

// parseJson overlays the JSON file given with -c/-config onto config. A
// missing flag loads nothing; an unreadable or invalid file panics.
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

	setString(&config.Mode, c.Mode)
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.QueueName, c.QueueName)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TimeZone, c.TimeZone)
	setString(&config.IDPrefix, c.IDPrefix)
	setString(&config.SchemaFile, c.SchemaFile)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.ExportPath, c.ExportPath)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.IDWidth > 0 {
		config.IDWidth = c.IDWidth
	}
	if c.PopTimeout != nil {
		config.PopTimeout = c.PopTimeout.Duration
	}
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
