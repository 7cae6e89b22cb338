package config

import "github.com/dmitrijs2005/favfood/internal/flagx"

// parseEnv overlays cfg with FAVFOOD_* variables, after loading .env.
// Malformed numbers or durations panic, like malformed flags do.
func parseEnv(cfg *Config) {
	if err := flagx.LoadDotEnv(); err != nil {
		panic(err)
	}

	flagx.EnvString("GRPC_ADDR", &cfg.EndpointAddrGRPC)
	flagx.EnvString("DATABASE_DSN", &cfg.DatabaseDSN)
	flagx.EnvString("SECRET_KEY", &cfg.SecretKey)
	flagx.EnvString("LOG_LEVEL", &cfg.LogLevel)
	flagx.EnvString("REDIS_ADDR", &cfg.RedisAddr)
	flagx.EnvString("REDIS_PASSWORD", &cfg.RedisPassword)
	flagx.EnvString("BLOB_BACKEND", &cfg.BlobBackend)
	flagx.EnvStrings("BLOB_FIELDS", &cfg.BlobFields)
	flagx.EnvString("S3_ROOT_USER", &cfg.S3RootUser)
	flagx.EnvString("S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	flagx.EnvString("S3_BUCKET", &cfg.S3Bucket)
	flagx.EnvString("S3_REGION", &cfg.S3Region)
	flagx.EnvString("S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)
	flagx.EnvString("GCS_BUCKET", &cfg.GCSBucket)
	flagx.EnvString("GCS_CREDENTIALS_FILE", &cfg.GCSCredentialsFile)

	for _, err := range []error{
		flagx.EnvInt("REDIS_DB", &cfg.RedisDB),
		flagx.EnvBool("S3_PATH_STYLE", &cfg.S3PathStyle),
		flagx.EnvDuration("ACCESS_TOKEN_TTL", &cfg.AccessTokenValidityDuration),
		flagx.EnvDuration("REFRESH_TOKEN_TTL", &cfg.RefreshTokenValidityDuration),
		flagx.EnvDuration("CACHE_TTL", &cfg.CacheTTL),
	} {
		if err != nil {
			panic(err)
		}
	}
}
