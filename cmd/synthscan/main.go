package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/synthscan/synthscan/internal/buildinfo"
	"github.com/synthscan/synthscan/internal/cli"
	"github.com/synthscan/synthscan/internal/config"
	"github.com/synthscan/synthscan/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
