package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"santorini/config"
	"santorini/engine"
	"santorini/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", "", "Path to a YAML config file")
	kinds := flag.Bool("kinds", false, "List the available player kinds and exit")
	flag.Parse()

	registry := player.NewRegistry()
	if *kinds {
		for _, kind := range registry.Kinds() {
			fmt.Println(kind)
		}
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("parse log level")
	}
	zerolog.SetGlobalLevel(level)

	if dump, err := cfg.YAML(); err == nil {
		log.Debug().Msgf("effective config:\n%s", dump)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := engine.New(*cfg, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("build engine")
	}
	if _, err := e.Run(ctx); err != nil {
		log.Error().Err(err).Msg("series aborted")
		stop()
		os.Exit(1)
	}
}
