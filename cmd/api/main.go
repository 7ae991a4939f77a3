package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "github.com/dogmawang-bsc/fake-html2/internal/adapters/http_server"
	"github.com/dogmawang-bsc/fake-html2/internal/adapters/observability"
	redisad "github.com/dogmawang-bsc/fake-html2/internal/adapters/redis"
	"github.com/dogmawang-bsc/fake-html2/internal/app"
	"github.com/dogmawang-bsc/fake-html2/internal/domain"
	"github.com/dogmawang-bsc/fake-html2/internal/shared"
	"github.com/dogmawang-bsc/fake-html2/internal/storage/jsonfile"
	"github.com/dogmawang-bsc/fake-html2/internal/storage/uploads"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// storage: upload tree and the two JSON documents, seeded on first start
	files, err := uploads.New(cfg.UploadDir, cfg.MaxUploadMB)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir init failed")
	}
	profileStore, err := jsonfile.NewProfileStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("profile store init failed")
	}
	reviewStore, err := jsonfile.NewReviewStore(cfg.DataDir, domain.SeedReviews(uuid.NewString))
	if err != nil {
		log.Fatal().Err(err).Msg("review store init failed")
	}

	var cache domain.Cache = redisad.Noop{}
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
	}

	// deps
	profiles := app.NewProfileService(profileStore, files, cache, cfg.CacheTTL)
	reviews := app.NewReviewService(reviewStore, files, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Profile:   profiles,
		Reviews:   reviews,
		Files:     files,
		MaxBatch:  cfg.MaxBatch,
		UploadRPS: cfg.UploadRPS,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}
