package config

import (
	"flag"
	"os"

	"github.com/oneearth-admin/oeff-docs/internal/flagx"
)

var (
	valueFlags = []string{
		"-h", "-db", "-helper", "-form", "-venue-param", "-email-param",
		"-token-length", "-o", "-passphrase-env", "-l",
		"-u", "-k", "-b", "-g", "-e",
	}
	switchFlags = []string{"-dry-run", "-regenerate", "-upload"}
)

// parseFlags overlays command-line flags onto config:
//
//	-h string             hosts CSV
//	-db string            security store (SQLite file)
//	-helper string        helper page base URL
//	-form string          update form base URL
//	-venue-param string   prefill parameter for the venue name
//	-email-param string   prefill parameter for the contact email
//	-token-length int     hex characters per token
//	-o string             token map output
//	-passphrase-env string  environment variable holding the passphrase
//	-l string             log level
//	-u -k -b -g -e        S3 access key, secret key, bucket, region, endpoint
//	-dry-run              reconcile and print a summary, write nothing
//	-regenerate           issue fresh credentials for every host
//	-upload               upload the token map to S3
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], valueFlags, switchFlags...)

	fs := flag.NewFlagSet("hostsec", flag.ContinueOnError)

	fs.StringVar(&config.HostsPath, "h", config.HostsPath, "hosts CSV")
	fs.StringVar(&config.DatabasePath, "db", config.DatabasePath, "security store path")
	fs.StringVar(&config.HelperBaseURL, "helper", config.HelperBaseURL, "helper base URL")
	fs.StringVar(&config.FormBaseURL, "form", config.FormBaseURL, "update form base URL")
	fs.StringVar(&config.VenueParam, "venue-param", config.VenueParam, "venue prefill parameter")
	fs.StringVar(&config.EmailParam, "email-param", config.EmailParam, "email prefill parameter")
	fs.IntVar(&config.TokenLength, "token-length", config.TokenLength, "token length")
	fs.StringVar(&config.TokenMapPath, "o", config.TokenMapPath, "token map output")
	fs.StringVar(&config.PassphraseEnv, "passphrase-env", config.PassphraseEnv, "passphrase environment variable")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "k", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.BoolVar(&config.DryRun, "dry-run", config.DryRun, "dry run")
	fs.BoolVar(&config.Regenerate, "regenerate", config.Regenerate, "regenerate all credentials")
	fs.BoolVar(&config.Upload, "upload", config.Upload, "upload token map")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
