package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/flagx"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from an explicit zero value; absent keys leave the
// current Config value untouched.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	UploadsDir                  *string         `json:"uploads_dir"`
	MaxUploadSize               *int64          `json:"max_upload_size"`
	StorageBackend              *string         `json:"storage_backend"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	LogBackend                  *string         `json:"log_backend"`
	LogLevel                    *string         `json:"log_level"`
	RedisAddr                   *string         `json:"redis_addr"`
	LoginRateLimit              *int            `json:"login_rate_limit"`
	LoginRateWindow             *timex.Duration `json:"login_rate_window"`
	PruneAttachments            *bool           `json:"prune_attachments"`
	OrphanSweepSchedule         *string         `json:"orphan_sweep_schedule"`
	OrphanGracePeriod           *timex.Duration `json:"orphan_grace_period"`
	ShutdownTimeout             *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// key it contains into config. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
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

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setString(&config.UploadsDir, c.UploadsDir)
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.RedisAddr, c.RedisAddr)
	if c.LoginRateLimit != nil {
		config.LoginRateLimit = *c.LoginRateLimit
	}
	setDuration(&config.LoginRateWindow, c.LoginRateWindow)
	if c.PruneAttachments != nil {
		config.PruneAttachments = *c.PruneAttachments
	}
	setString(&config.OrphanSweepSchedule, c.OrphanSweepSchedule)
	setDuration(&config.OrphanGracePeriod, c.OrphanGracePeriod)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
