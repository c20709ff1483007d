package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"intaked",
				"-m", "export", "-a", "127.0.0.1:9090", "-d", "db", "-r", "redis://r:6379/1",
				"-q", "q", "-s", "secret", "-t", "2h", "-z", "UTC", "-p", "INT-", "-w", "4",
				"-f", "schema.yaml", "-l", "debug", "-o", "out.csv",
				"-u", "user", "-k", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
				"-migrate", "-upload",
			},
			expected: &Config{
				Mode: "export", HTTPAddr: "127.0.0.1:9090", DatabaseDSN: "db", RedisURL: "redis://r:6379/1",
				QueueName: "q", SecretKey: "secret", TokenValidity: 2 * time.Hour, TimeZone: "UTC",
				IDPrefix: "INT-", IDWidth: 4, SchemaFile: "schema.yaml", LogLevel: "debug", ExportPath: "out.csv",
				S3AccessKey: "user", S3SecretKey: "password", S3Bucket: "bucket", S3Region: "us-west-1",
				S3BaseEndpoint: "http://endpoint", Migrate: true, Upload: true,
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"intaked", "-c", "cfg.json", "-migrate", "stray", "-x", "1"},
			expected: &Config{Migrate: true},
		},
		{
			name:        "bad int panics",
			args:        []string{"intaked", "-w", "three"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
