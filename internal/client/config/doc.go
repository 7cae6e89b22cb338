// Package config loads runtime configuration for the favfood CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. FAVFOOD_* environment variables, after loading an optional .env file.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "data_dir": ".favfood",
//	  "log_level": "debug",
//	  "photo_max_dimension": 512,
//	  "photo_quality": 70
//	}
package config
