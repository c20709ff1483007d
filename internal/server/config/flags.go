package config

import (
	"flag"
	"os"

	"github.com/oneearth-admin/oeff-docs/internal/flagx"
)

var (
	valueFlags = []string{
		"-m", "-a", "-d", "-r", "-q", "-s", "-t", "-z", "-p", "-w", "-f", "-l", "-o",
		"-u", "-k", "-b", "-g", "-e",
	}
	switchFlags = []string{"-migrate", "-upload"}
)

// parseFlags overlays command-line flags onto config:
//
//	-m string   mode: serve, reprocess, export or token
//	-a string   HTTP listen address
//	-d string   PostgreSQL DSN
//	-r string   Redis URL
//	-q string   Redis list used as the submission queue
//	-s string   webhook JWT secret
//	-t duration validity of tokens minted with -m token
//	-z string   IANA time zone for dates and timestamps
//	-p string   Intake_ID prefix
//	-w int      Intake_ID digit width
//	-f string   question schema file (empty: built-in)
//	-l string   log level
//	-o string   CSV path for -m export
//	-u -k -b -g -e   S3 access key, secret key, bucket, region, endpoint
//	-migrate    apply database migrations before running
//	-upload     upload the export to S3
//
// Parse errors panic.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], valueFlags, switchFlags...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Mode, "m", config.Mode, "mode: serve, reprocess, export, token")
	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP listen address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "Redis URL")
	fs.StringVar(&config.QueueName, "q", config.QueueName, "submission queue name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "webhook JWT secret")
	fs.DurationVar(&config.TokenValidity, "t", config.TokenValidity, "minted token validity")
	fs.StringVar(&config.TimeZone, "z", config.TimeZone, "time zone")
	fs.StringVar(&config.IDPrefix, "p", config.IDPrefix, "intake id prefix")
	fs.IntVar(&config.IDWidth, "w", config.IDWidth, "intake id width")
	fs.StringVar(&config.SchemaFile, "f", config.SchemaFile, "question schema file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.ExportPath, "o", config.ExportPath, "export CSV path")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "k", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.BoolVar(&config.Migrate, "migrate", config.Migrate, "apply migrations")
	fs.BoolVar(&config.Upload, "upload", config.Upload, "upload export to S3")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
