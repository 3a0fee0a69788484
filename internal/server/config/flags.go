package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/flagx"
)

// serverFlags lists every flag parseFlags understands; anything else on the
// command line (e.g. -c, -e) is filtered out before parsing.
var serverFlags = []string{
	"-a", "-d", "-s", "-t", "-f", "-m", "-k",
	"-u", "-p", "-b", "-g", "-n",
	"-l", "-log-backend", "-redis", "-login-limit", "-login-window",
	"-prune-attachments", "-sweep-schedule",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":4000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-f string   local uploads directory
//	-m int      max multipart upload size, bytes
//	-k string   storage backend: local | s3
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-n string   S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-l string   log level
//	-log-backend string        slog | zap
//	-redis string              Redis address for login throttling
//	-login-limit int           login attempts per window per client IP, 0 disables
//	-login-window duration     login throttling window
//	-prune-attachments bool    delete replaced/deleted attachment objects
//	-sweep-schedule string     cron spec for the orphan attachment sweep
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.UploadsDir, "f", config.UploadsDir, "uploads directory")
	fs.Int64Var(&config.MaxUploadSize, "m", config.MaxUploadSize, "max upload size (bytes)")
	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "storage backend (local|s3)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "n", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogBackend, "log-backend", config.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")
	fs.IntVar(&config.LoginRateLimit, "login-limit", config.LoginRateLimit, "login attempts per window")
	fs.DurationVar(&config.LoginRateWindow, "login-window", config.LoginRateWindow, "login throttling window")
	fs.BoolVar(&config.PruneAttachments, "prune-attachments", config.PruneAttachments, "delete replaced attachments")
	fs.StringVar(&config.OrphanSweepSchedule, "sweep-schedule", config.OrphanSweepSchedule, "orphan sweep cron spec")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		}
	})
}
