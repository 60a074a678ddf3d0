package main

import (
	"net/http"
	"os"

	"github.com/kiteco/prettyfast/kite-go/health"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/prettyfast"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/prettyfastserver"
	"github.com/kiteco/prettyfast/kite-golib/envutil"
	"github.com/kiteco/prettyfast/kite-golib/gkeutil"
	"go.uber.org/zap"
)

var (
	port       = envutil.GetenvDefault("PRETTYFAST_PORT", ":9093")
	cacheSize  = envutil.GetenvDefaultInt("PRETTYFAST_CACHE_SIZE", 1000)
	maxBytes   = envutil.GetenvDefaultBytes("PRETTYFAST_MAX_BYTES", 4<<20)
	configPath = envutil.GetenvDefault("PRETTYFAST_CONFIG", "")
)

func main() {
	logger := gkeutil.Logger.With(zap.String("service", "prettyfast-server"))
	defer logger.Sync()
	log := logger.Sugar()

	conf := prettyfast.DefaultConfig()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalw("error opening config", "path", configPath, "error", err)
		}
		conf, err = prettyfast.LoadConfig(f)
		f.Close()
		if err != nil {
			log.Fatalw("error loading config", "path", configPath, "error", err)
		}
	}

	server, err := prettyfastserver.NewServer(prettyfastserver.Options{
		CacheSize: cacheSize,
		MaxBytes:  maxBytes,
		Config:    conf,
	}, logger)
	if err != nil {
		log.Fatalw("error creating server", "error", err)
	}

	log.Infow("listening", "port", port, "cache_size", cacheSize, "max_bytes", maxBytes)
	health.SetReady()
	if err := http.ListenAndServe(port, server.Handler()); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}
