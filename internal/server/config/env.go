package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/flagx"
)

// EnvPrefix is prepended to every environment variable the server reads.
const EnvPrefix = "PHARMACY_"

// lookupEnv is a seam for tests.
var lookupEnv = os.LookupEnv

// parseEnv overlays Config with PHARMACY_* environment variables.
//
// A dotenv file is loaded first: the one named by -e/-env-file, or ".env"
// in the working directory if present. Variables already set in the process
// environment win over the file.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			panic(err)
		}
	}

	envString(&config.EndpointAddrHTTP, "ADDRESS")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "SECRET_KEY")
	envDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_VALIDITY")
	envString(&config.UploadsDir, "UPLOADS_DIR")
	envInt64(&config.MaxUploadSize, "MAX_UPLOAD_SIZE")
	envString(&config.StorageBackend, "STORAGE_BACKEND")
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envString(&config.LogBackend, "LOG_BACKEND")
	envString(&config.LogLevel, "LOG_LEVEL")
	envString(&config.RedisAddr, "REDIS_ADDR")
	envInt(&config.LoginRateLimit, "LOGIN_RATE_LIMIT")
	envDuration(&config.LoginRateWindow, "LOGIN_RATE_WINDOW")
	envBool(&config.PruneAttachments, "PRUNE_ATTACHMENTS")
	envString(&config.OrphanSweepSchedule, "ORPHAN_SWEEP_SCHEDULE")
	envDuration(&config.OrphanGracePeriod, "ORPHAN_GRACE_PERIOD")
	envDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
}

func envString(dst *string, name string) {
	if v, ok := lookupEnv(EnvPrefix + name); ok {
		*dst = v
	}
}

func envInt(dst *int, name string) {
	if v, ok := lookupEnv(EnvPrefix + name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		*dst = n
	}
}

func envInt64(dst *int64, name string) {
	if v, ok := lookupEnv(EnvPrefix + name); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		*dst = n
	}
}

func envBool(dst *bool, name string) {
	if v, ok := lookupEnv(EnvPrefix + name); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		*dst = b
	}
}

func envDuration(dst *time.Duration, name string) {
	if v, ok := lookupEnv(EnvPrefix + name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*dst = d
	}
}
