package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/0x0redd/linreg/internal/config"
	"github.com/0x0redd/linreg/internal/lab"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the lab config, relative to the working directory; defaults are used when it cannot be read")
	part := flag.String("part", "all", "part to run: all, synthetic, manual or real")
	level := flag.String("level", "info", "log level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Str("level", *level).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to default config")
		cfg = config.Default()
	}

	if err := run(cfg, *part); err != nil {
		log.Fatal().Err(err).Str("part", *part).Msg("lab failed")
	}
}

func run(cfg config.Config, part string) error {
	out := os.Stdout
	switch part {
	case "all":
		if _, err := lab.Synthetic(cfg, out); err != nil {
			return err
		}
		if _, err := lab.Manual(cfg.Manual, out); err != nil {
			return err
		}
		if _, err := lab.Real(cfg.Real, out); err != nil {
			return err
		}
	case "synthetic":
		_, err := lab.Synthetic(cfg, out)
		return err
	case "manual":
		_, err := lab.Manual(cfg.Manual, out)
		return err
	case "real":
		_, err := lab.Real(cfg.Real, out)
		return err
	default:
		return fmt.Errorf("unknown part %q", part)
	}
	return nil
}
