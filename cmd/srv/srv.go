package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/greenquest-lab/backend/config"
	"github.com/greenquest-lab/backend/internal/domain"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/authenticator"
	"github.com/greenquest-lab/backend/pkg/kafka"
	"github.com/greenquest-lab/backend/pkg/logger"
	"github.com/greenquest-lab/backend/pkg/pubsub"
	"github.com/greenquest-lab/backend/pkg/router"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"

	"github.com/gorilla/sessions"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs

	questRepo            repository.QuestRepository
	questTaskRepo        repository.QuestTaskRepository
	userQuestRepo        repository.UserQuestRepository
	userTaskProgressRepo repository.UserTaskProgressRepository
	badgeRepo            repository.BadgeRepository
	userBadgeRepo        repository.UserBadgeRepository
	rewardRepo           repository.RewardRepository
	profileRepo          repository.ProfileRepository

	questDomain     domain.QuestDomain
	badgeDomain     domain.BadgeDomain
	rewardDomain    domain.RewardDomain
	statisticDomain domain.StatisticDomain
	userDomain      domain.UserDomain
	scorerDomain    domain.ScorerDomain

	redisClient   xredis.Client
	publisher     pubsub.Publisher
	stopPublisher func(context.Context) error

	router *router.Router
	server *http.Server
}

// loadContext builds the base context shared by every command. It carries
// the configs, the logger and a database opened with dsn.
func (s *srv) loadContext(dsn string) {
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(s.configs.LogLevel)))
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase(dsn))
}

func (s *srv) newDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       dsn,
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(s.configs.Database.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent", "silence":
		return gormlogger.Silent
	case "warn", "warning":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	publisher, err := kafka.NewPublisher("api", []string{s.configs.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
	s.stopPublisher = publisher.Stop
}

func (s *srv) loadAuth() {
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(s.configs.Auth.TokenSecret))

	store := sessions.NewCookieStore([]byte(s.configs.Session.Secret))
	store.Options.HttpOnly = true
	store.Options.Secure = s.configs.ApiServer.Cert != ""
	store.Options.SameSite = http.SameSiteLaxMode
	s.ctx = xcontext.WithSessionStore(s.ctx, store)
}

func (s *srv) loadRepos() {
	s.questRepo = repository.NewQuestRepository()
	s.questTaskRepo = repository.NewQuestTaskRepository()
	s.userQuestRepo = repository.NewUserQuestRepository()
	s.userTaskProgressRepo = repository.NewUserTaskProgressRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.userBadgeRepo = repository.NewUserBadgeRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.profileRepo = repository.NewProfileRepository()
}

func (s *srv) loadDomains() {
	s.questDomain = domain.NewQuestDomain(
		s.questRepo,
		s.questTaskRepo,
		s.userQuestRepo,
		s.userTaskProgressRepo,
		s.redisClient,
		s.publisher,
	)
	s.badgeDomain = domain.NewBadgeDomain(s.badgeRepo, s.userBadgeRepo, s.redisClient)
	s.rewardDomain = domain.NewRewardDomain(s.rewardRepo, s.profileRepo, s.redisClient)
	s.statisticDomain = domain.NewStatisticDomain(s.profileRepo, s.redisClient)
	s.userDomain = domain.NewUserDomain(s.profileRepo, s.redisClient)
	s.scorerDomain = domain.NewScorerDomain(s.questRepo, s.userQuestRepo, s.profileRepo, s.redisClient)
}
