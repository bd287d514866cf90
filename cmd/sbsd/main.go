package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/spelledout/sbs/api"
	"github.com/spelledout/sbs/config"
)

const GracefulShutdownTimeout = 20 * time.Second

func main() {
	var (
		addr       = pflag.String("addr", "0.0.0.0:8080", "listen address")
		configPath = pflag.StringP("config", "c", "", "path to a JSON/YAML config file")
		dictionary = pflag.StringP("dictionary", "d", "", "path to the newline-delimited word list")
		watch      = pflag.Bool("watch", true, "reload the dictionary when the file changes")
		debug      = pflag.Bool("debug", false, "enable debug logging")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *dictionary != "" {
		cfg.Dictionary = *dictionary
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if *debug || cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	log.Info().Str("dictionary", cfg.Dictionary).Msg("loading dictionary")
	srv, err := api.NewServer(*addr, cfg.Dictionary)
	if err != nil {
		log.Error().Err(err).Msg("failed to load dictionary")
		os.Exit(1)
	}
	if *watch {
		if err := srv.Watch(); err != nil {
			log.Error().Err(err).Msg("failed to watch dictionary file")
			os.Exit(1)
		}
	}

	idle := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
		close(idle)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server")
		os.Exit(1)
	}
	<-idle
}
