package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"connectn/game"
	"connectn/meta"
)

const (
	KindHuman   = "human"
	KindMinimax = "minimax"
	KindMCTS    = "mcts"
	KindRandom  = "random"
)

const (
	CommandMatch      = "match"
	CommandExperiment = "experiment"
)

var ErrUnknownAgentKind = errors.New("unknown agent kind")

// AgentConfig describes one agent. Fields that do not apply to Kind are
// ignored. A zero Seed draws a fresh one.
type AgentConfig struct {
	Kind        string  `yaml:"kind"`
	Name        string  `yaml:"name"`
	Depth       int     `yaml:"depth,omitempty"`
	Iterations  int     `yaml:"iterations,omitempty"`
	Exploration float64 `yaml:"exploration,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
	Seed        uint64  `yaml:"seed,omitempty"`
}

type ExperimentConfig struct {
	Games   int    `yaml:"games"`
	Workers int    `yaml:"workers"`
	Dir     string `yaml:"dir"`
	Name    string `yaml:"name"`
}

type Config struct {
	Command    string
	Rows       int
	Cols       int
	LogLevel   string
	Render     bool
	Positive   AgentConfig
	Negative   AgentConfig
	Experiment ExperimentConfig
}

func (c *Config) Shape() game.Shape {
	return game.Shape{Rows: c.Rows, Cols: c.Cols}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rows", meta.ROWS)
	v.SetDefault("cols", meta.COLS)
	v.SetDefault("log-level", "info")
	v.SetDefault("render", true)

	v.SetDefault("positive.kind", KindHuman)
	v.SetDefault("positive.name", "Human")
	v.SetDefault("negative.kind", KindMCTS)
	v.SetDefault("negative.name", "Mr. Monte Carlo")
	for _, side := range []string{"positive", "negative"} {
		v.SetDefault(side+".depth", meta.DEPTH)
		v.SetDefault(side+".iterations", meta.ITERATIONS)
		v.SetDefault(side+".exploration", meta.EXPLORATION)
		v.SetDefault(side+".temperature", 0.0)
		v.SetDefault(side+".seed", 0)
	}

	v.SetDefault("experiment.games", meta.GAMES)
	v.SetDefault("experiment.workers", 1)
	v.SetDefault("experiment.dir", "experiments")
	v.SetDefault("experiment.name", "matchup")
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("connectn", pflag.ContinueOnError)
	fs.String("config", "", "optional YAML config file")
	fs.Int("rows", meta.ROWS, "board rows")
	fs.Int("cols", meta.COLS, "board columns")
	fs.String("log-level", "info", "log level: debug, info or disabled")
	fs.Bool("render", true, "print the board after every move")
	for _, side := range []string{"positive", "negative"} {
		fs.String(side+".kind", "", "agent kind: human, minimax, mcts or random")
		fs.String(side+".name", "", "agent display name")
		fs.Int(side+".depth", meta.DEPTH, "minimax search depth")
		fs.Int(side+".iterations", meta.ITERATIONS, "MCTS iterations per move")
		fs.Float64(side+".exploration", meta.EXPLORATION, "UCT exploration constant")
		fs.Float64(side+".temperature", 0, "MCTS move sampling temperature, 0 picks the most visited move")
		fs.Uint64(side+".seed", 0, "random seed, 0 draws a fresh one")
	}
	fs.Int("experiment.games", meta.GAMES, "games per matchup")
	fs.Int("experiment.workers", 1, "games played concurrently")
	fs.String("experiment.dir", "experiments", "directory experiment results are written under")
	fs.String("experiment.name", "matchup", "experiment name")
	return fs
}

// Load reads the configuration from, in increasing precedence, defaults, the
// --config file, CONNECTN_* environment variables and flags. The first
// positional argument selects the command.
func (c *Config) Load(args []string) error {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("connectn")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	// Only flags given on the command line override the layers below.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	c.Command = CommandMatch
	if fs.NArg() > 0 {
		c.Command = fs.Arg(0)
	}
	c.Rows = v.GetInt("rows")
	c.Cols = v.GetInt("cols")
	c.LogLevel = v.GetString("log-level")
	c.Render = v.GetBool("render")
	c.Positive = agentConfig(v, "positive")
	c.Negative = agentConfig(v, "negative")
	c.Experiment = ExperimentConfig{
		Games:   v.GetInt("experiment.games"),
		Workers: v.GetInt("experiment.workers"),
		Dir:     v.GetString("experiment.dir"),
		Name:    v.GetString("experiment.name"),
	}
	return c.Validate()
}

func agentConfig(v *viper.Viper, side string) AgentConfig {
	return AgentConfig{
		Kind:        strings.ToLower(v.GetString(side + ".kind")),
		Name:        v.GetString(side + ".name"),
		Depth:       v.GetInt(side + ".depth"),
		Iterations:  v.GetInt(side + ".iterations"),
		Exploration: v.GetFloat64(side + ".exploration"),
		Temperature: v.GetFloat64(side + ".temperature"),
		Seed:        v.GetUint64(side + ".seed"),
	}
}

// Validate checks the configuration for the selected command.
func (c *Config) Validate() error {
	switch c.Command {
	case CommandMatch, CommandExperiment:
	default:
		return fmt.Errorf("unknown command %q", c.Command)
	}
	if c.Rows <= 0 || c.Cols <= 0 || c.Rows*c.Cols > game.MaxCells {
		return fmt.Errorf("board %dx%d must have between 1 and %d cells", c.Rows, c.Cols, game.MaxCells)
	}
	switch c.LogLevel {
	case "debug", "info", "disabled":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if err := c.Positive.Validate(); err != nil {
		return fmt.Errorf("positive agent: %w", err)
	}
	if err := c.Negative.Validate(); err != nil {
		return fmt.Errorf("negative agent: %w", err)
	}

	if c.Command == CommandExperiment {
		if c.Experiment.Games <= 0 || c.Experiment.Workers <= 0 {
			return fmt.Errorf("experiment needs positive games and workers, got %d and %d",
				c.Experiment.Games, c.Experiment.Workers)
		}
		if c.Experiment.Dir == "" || c.Experiment.Name == "" {
			return errors.New("experiment needs a directory and a name")
		}
	}
	return nil
}

func (a AgentConfig) Validate() error {
	switch a.Kind {
	case KindHuman, KindRandom:
	case KindMinimax:
		if a.Depth < 1 {
			return fmt.Errorf("minimax depth must be at least 1, got %d", a.Depth)
		}
	case KindMCTS:
		if a.Iterations < 1 {
			return fmt.Errorf("mcts iterations must be at least 1, got %d", a.Iterations)
		}
		if a.Exploration < 0 {
			return fmt.Errorf("exploration must not be negative, got %g", a.Exploration)
		}
		if a.Temperature < 0 {
			return fmt.Errorf("temperature must not be negative, got %g", a.Temperature)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAgentKind, a.Kind)
	}
	return nil
}
