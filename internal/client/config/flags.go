package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/favfood/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   address and port of the backend server
//	-i int      online check interval (in seconds)
//	-D string   local data directory
//	-l string   log level
//	-m int      longest side of an uploaded photo, pixels
//	-q int      JPEG quality of an uploaded photo (1-100)
//
// os.Args is filtered with flagx.FilterArgs so unknown flags are ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-D", "-l", "-m", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DataDir, "D", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.PhotoMaxDimension, "m", cfg.PhotoMaxDimension, "max photo dimension (px)")
	fs.IntVar(&cfg.PhotoQuality, "q", cfg.PhotoQuality, "photo JPEG quality")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
