package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"hmblog/internal/build"
	"hmblog/internal/domain/config"
	"hmblog/internal/watch"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath string
	watchMode  bool
	force      bool
	debug      bool
)

func main() {
	flag.StringVar(&configPath, "config", "./site.yaml", "Path to the site config file")
	flag.BoolVar(&watchMode, "watch", false, "Rebuild whenever the source directory changes")
	flag.BoolVar(&force, "force", false, "Build even when the content fingerprint is unchanged")
	flag.BoolVar(&debug, "debug", false, "Sets log level to debug")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", configPath).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := &build.Builder{
		Cfg:       cfg,
		IndexPath: cfg.Build.IndexPath,
		Force:     force,
	}

	res, err := b.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("build finished with failed targets")
		if !watchMode {
			os.Exit(1)
		}
	} else if !res.Skipped {
		log.Info().Int("posts", res.Posts).Int("warnings", len(res.Warnings)).Msg("site built")
	}

	if !watchMode {
		return
	}

	err = watch.Watch(ctx, cfg.Build.SourceDir, func(ctx context.Context) error {
		_, err := b.Run(ctx)
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("watch failed")
	}
}
