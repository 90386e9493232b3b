package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenquest-lab/backend/pkg/kafka"
	"github.com/greenquest-lab/backend/pkg/pubsub"
	"github.com/greenquest-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startScorer(*cli.Context) error {
	s.loadContext(s.configs.Database.ConnectionString())
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()

	// The consumer session context has none of the values of the base
	// context, so the handler always runs with s.ctx.
	handler := func(_ context.Context, pack *pubsub.Pack, t time.Time) {
		s.scorerDomain.HandleEvent(s.ctx, pack, t)
	}

	subscriber, err := kafka.NewSubscriber(
		"scorer",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Quest.CompletedTopic},
		handler,
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.startMetrics()
	subscriber.Subscribe(ctx)
	xcontext.Logger(s.ctx).Infof("Start scorer successfully")

	<-ctx.Done()
	return subscriber.Stop(s.ctx)
}
