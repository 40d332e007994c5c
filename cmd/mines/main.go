package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/console"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	configPath string
	dimSize    int
	numBombs   int
	seed       uint64
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.IntVar(&dimSize, "size", 0, "board side length (default 10)")
	flag.IntVar(&numBombs, "bombs", 0, "number of mines (default 10)")
	flag.Uint64Var(&seed, "seed", 0, "mine placement seed, 0 picks a random one")
}

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Game.DimSize = dimSize
		case "bombs":
			cfg.Game.NumBombs = numBombs
		case "seed":
			cfg.Game.Seed = seed
		}
	})
	return cfg, cfg.Validate()
}

// newLogger keeps the terminal clean: log lines go to the log file when
// one is configured and are dropped otherwise, except for warnings.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	if cfg.Log.File != "" {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stderr)
		if cfg.Log.Level == "" {
			log.SetLevel(logrus.WarnLevel)
		}
	}
	return log, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	log.WithFields(cfg.Fields()).Debug("loaded config")

	board, err := mines.New(cfg.Game.Params(), mines.NewRand(cfg.Game.Seed))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, err = console.New(board, os.Stdin, os.Stdout, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stdout)
	}
	return err
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mines:", err)
		os.Exit(1)
	}
}
