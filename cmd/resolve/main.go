package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"uns-resolution/internal/application/port"
	"uns-resolution/internal/bootstrap"
	"uns-resolution/internal/config"
	"uns-resolution/internal/logger"
)

func main() {
	var (
		cfgPath   string
		service   port.ResolutionService
		zapLogger *zap.Logger
	)

	app := &cli.App{
		Name:  "resolve",
		Usage: "Resolve blockchain domains across UNS and ZNS",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "configs",
				Usage:       "Directory holding config.yaml",
				EnvVars:     []string{"UNS_RESOLUTION_CONFIG"},
				Destination: &cfgPath,
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			// stdout carries results only.
			cfg.Logger.Output = "stderr"
			zapLogger, err = logger.NewLogger(cfg.Logger)
			if err != nil {
				return err
			}
			service, err = bootstrap.BuildResolutionService(c.Context, cfg, zapLogger.Named("cli"))
			return err
		},
		After: func(*cli.Context) error {
			if zapLogger != nil {
				_ = zapLogger.Sync()
			}
			return nil
		},
		Commands: commands(func() port.ResolutionService { return service }),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
