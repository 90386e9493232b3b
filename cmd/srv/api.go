package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/middleware"
	"github.com/greenquest-lab/backend/pkg/prometheus"
	"github.com/greenquest-lab/backend/pkg/router"
	"github.com/greenquest-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadContext(s.configs.Database.ConnectionString())
	s.loadRedis()
	s.loadPublisher()
	s.loadAuth()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := s.configs.ApiServer
	s.server = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router.Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The publisher is closed only after in-flight requests are drained.
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}

		if err := s.stopPublisher(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot stop publisher: %v", err)
		}
	}()

	s.startMetrics()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", cfg.Address())

	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-drained
	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.VerifyAccessToken())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Session API
	router.POST(s.router, "/setSession", s.userDomain.SetSession)

	// These following APIs need an authenticated farmer.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate)
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/signOut", s.userDomain.SignOut)

		// Quest API
		router.GET(authRouter, "/getQuest", s.questDomain.Get)
		router.GET(authRouter, "/getActiveQuests", s.questDomain.GetActive)
		router.POST(authRouter, "/startQuest", s.questDomain.Start)
		router.POST(authRouter, "/toggleTask", s.questDomain.ToggleTask)
		router.POST(authRouter, "/completeQuest", s.questDomain.Complete)

		// Badge API
		router.GET(authRouter, "/getMyBadges", s.badgeDomain.GetMyBadges)

		// Reward API
		router.GET(authRouter, "/getMyRewards", s.rewardDomain.GetMyRewards)
	}

	// Public API.
	router.GET(s.router, "/getListQuest", s.questDomain.GetList)
	router.GET(s.router, "/getListBadge", s.badgeDomain.GetList)
	router.GET(s.router, "/getListReward", s.rewardDomain.GetList)
	router.GET(s.router, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
}

// startMetrics serves prometheus metrics on their own port. An empty port
// disables it.
func (s *srv) startMetrics() {
	cfg := s.configs.Metrics
	if cfg.Port == "" {
		return
	}

	go func() {
		httpSrv := &http.Server{
			Addr:              cfg.Address(),
			Handler:           prometheus.NewHandler(common.PromCollectors()...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		xcontext.Logger(s.ctx).Infof("Starting prometheus on %s", cfg.Address())
		if err := httpSrv.ListenAndServe(); err != nil {
			xcontext.Logger(s.ctx).Errorf("Prometheus server stop: %v", err)
		}
	}()
}
