package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"connectn/config"
	"connectn/engine"
	"connectn/experiments"
	"connectn/game"
	"connectn/player"
	"connectn/searcher/agent"
)

func main() {
	cfg := &config.Config{}
	err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr}
	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	log.Debug().Msg("Debug logging is on")

	switch cfg.Command {
	case config.CommandExperiment:
		err = runExperiment(cfg)
	default:
		err = runMatch(cfg)
	}
	if errors.Is(err, player.ErrQuit) {
		log.Info().Msg("bye")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func runMatch(cfg *config.Config) error {
	var terminal *readline.Instance
	if cfg.Positive.Kind == config.KindHuman || cfg.Negative.Kind == config.KindHuman {
		var err error
		terminal, err = player.NewTerminal()
		if err != nil {
			return err
		}
		defer terminal.Close()
	}

	var in player.LineReader
	var out io.Writer
	if terminal != nil {
		in, out = terminal, terminal
	}
	positive, err := agent.FromConfig(cfg.Positive, game.Positive, in, out)
	if err != nil {
		return fmt.Errorf("positive agent: %w", err)
	}
	negative, err := agent.FromConfig(cfg.Negative, game.Negative, in, out)
	if err != nil {
		return fmt.Errorf("negative agent: %w", err)
	}

	options := []engine.Option{}
	if cfg.Render {
		options = append(options, engine.WithOutput(os.Stdout))
	}
	e := engine.NewLocalEngine(positive, negative, cfg.Shape(), options...)
	_, _, err = e.Run()
	return err
}

func runExperiment(cfg *config.Config) error {
	params := experiments.Params{
		Shape:   cfg.Shape(),
		Games:   cfg.Experiment.Games,
		Workers: cfg.Experiment.Workers,
	}
	setup, err := experiments.Resolve(cfg.Experiment.Name, params, cfg.Positive, cfg.Negative)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := experiments.Run(ctx, setup, cfg.Experiment.Dir)
	if err != nil {
		return err
	}
	log.Info().Str("dir", results.Dir).Msg("experiment-stored")
	return nil
}
