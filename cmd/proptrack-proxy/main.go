package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"proptrack/internal/syncproxy"
)

func main() {
	// A local .env is convenient for development; ignore if absent.
	_ = godotenv.Load()

	defaults := syncproxy.DefaultConfig()
	addr := flag.String("addr", envOr("PROPTRACK_PROXY_ADDR", defaults.Addr), "Listen address")
	token := flag.String("token", os.Getenv("PROPTRACK_PROXY_TOKEN"), "Bearer token clients must present")
	dataPath := flag.String("data", envOr("PROPTRACK_PROXY_DATA", "proptrack-blob.json"), "Path of the blob file")
	origins := flag.String("origins", os.Getenv("PROPTRACK_PROXY_ORIGINS"), "Comma-separated allowed CORS origins")
	logLevel := flag.String("log-level", envOr("PROPTRACK_PROXY_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "Error: a token is required (--token or PROPTRACK_PROXY_TOKEN)")
		os.Exit(1)
	}

	cfg := defaults
	cfg.Addr = *addr
	cfg.Token = *token
	if *origins != "" {
		for _, o := range strings.Split(*origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	blobs, err := syncproxy.NewFileStore(*dataPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening blob store")
	}

	server, err := syncproxy.NewServer(cfg, blobs, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuring server")
	}

	color.Green("proptrack-proxy listening on %s", cfg.Addr)
	color.White("  blob file: %s", *dataPath)
	if len(cfg.AllowedOrigins) > 0 {
		color.White("  origins:   %s", strings.Join(cfg.AllowedOrigins, ", "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
