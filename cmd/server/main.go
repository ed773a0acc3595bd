package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	_ "genz-ignite/docs"
	"genz-ignite/internal/config"
	"genz-ignite/internal/domain/announcement"
	"genz-ignite/internal/domain/complaint"
	"genz-ignite/internal/domain/member"
	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/domain/stats"
	"genz-ignite/internal/domain/user"
	"genz-ignite/internal/domain/vote"
	api "genz-ignite/internal/http"
	"genz-ignite/internal/metrics"
	"genz-ignite/internal/platform/database"
	jwtpkg "genz-ignite/internal/platform/jwt"
	"genz-ignite/internal/realtime"
	"genz-ignite/internal/repository/postgres"
	"genz-ignite/internal/worker"
)

// @title           GenZ Ignite Campaign API
// @version         1.0
// @description     Campaign site backend: policies, live poll, announcements, complaints
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	policyRepo := postgres.NewPolicyRepo(db)
	pollRepo := postgres.NewPollRepo(db)

	hub := realtime.NewHub(logger)
	hub.OnSubscribersChanged = metrics.SetStreamSubscribers

	// With the LISTEN bridge on, the database trigger announces poll changes;
	// publishing from the vote service as well would deliver them twice.
	var publisher vote.Publisher = hub
	if cfg.RealtimeListen {
		publisher = nil
	}

	svc := api.Services{
		Users:         user.NewService(userRepo),
		Policies:      policy.NewService(policyRepo),
		Polls:         poll.NewService(pollRepo),
		Votes:         vote.NewService(policyRepo, pollRepo, publisher),
		Announcements: announcement.NewService(postgres.NewAnnouncementRepo(db)),
		Members:       member.NewService(postgres.NewMemberRepo(db)),
		Complaints:    complaint.NewService(postgres.NewComplaintRepo(db)),
		Stats:         stats.NewService(postgres.NewStatsRepo(db), cfg.StatsCacheTTL),
	}
	svc.Votes.SetLogger(logger)

	created, err := svc.Users.Bootstrap(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("admin bootstrap error: %v", err)
	}
	if created {
		logger.Info("bootstrapped admin account", "email", cfg.AdminEmail)
	}

	voteCh := make(chan worker.VoteEvent, 100)
	statsWorker := worker.NewStatsWorker(voteCh, logger)
	digest := &worker.ComplaintDigest{
		Complaints: svc.Complaints,
		Schedule:   cfg.DigestSchedule,
		Logger:     logger,
	}

	router := api.NewRouter(svc, api.Options{
		JWT:        jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer, user.RoleAdmin, user.RoleStaff),
		TokenTTL:   cfg.TokenTTL,
		Hub:        hub,
		VoteCh:     voteCh,
		DB:         db,
		TrustProxy: cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Close)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return statsWorker.Run(gctx) })
	g.Go(func() error { return digest.Run(gctx) })

	if cfg.RealtimeListen {
		pool, err := database.NewPool(ctx, cfg.DB_DSN)
		if err != nil {
			log.Fatalf("listener pool error: %v", err)
		}
		defer pool.Close()

		listener := &realtime.PGListener{
			Pool:       pool,
			Hub:        hub,
			Channel:    database.PollChannel,
			Collection: vote.PollCollection,
			Logger:     logger,
		}
		g.Go(func() error { return listener.Run(gctx) })
	}

	g.Go(func() error {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
