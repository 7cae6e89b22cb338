package config

import "github.com/dmitrijs2005/favfood/internal/flagx"

// parseEnv overlays cfg with FAVFOOD_* variables, after loading .env.
func parseEnv(cfg *Config) {
	if err := flagx.LoadDotEnv(); err != nil {
		panic(err)
	}

	flagx.EnvString("SERVER_ADDR", &cfg.ServerEndpointAddr)
	flagx.EnvString("DATA_DIR", &cfg.DataDir)
	flagx.EnvString("DATABASE_FILE", &cfg.DatabaseFile)
	flagx.EnvString("LOG_FILE", &cfg.LogFile)
	flagx.EnvString("LOG_LEVEL", &cfg.LogLevel)

	for _, err := range []error{
		flagx.EnvDuration("ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval),
		flagx.EnvInt("PHOTO_MAX_DIMENSION", &cfg.PhotoMaxDimension),
		flagx.EnvInt("PHOTO_QUALITY", &cfg.PhotoQuality),
	} {
		if err != nil {
			panic(err)
		}
	}
}
