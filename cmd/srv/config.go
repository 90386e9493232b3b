package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/greenquest-lab/backend/config"
	"github.com/urfave/cli/v2"
)

func defaultConfigs() config.Configs {
	return config.Configs{
		Env:      "local",
		LogLevel: "info",
		Database: config.DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "greenquest",
			User:     "mysql",
			Password: "mysql",
			LogLevel: "error",
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{Port: "8080"},
		},
		Metrics: config.ServerConfigs{Port: "9090"},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: 7 * 24 * time.Hour,
			},
		},
		Session: config.SessionConfigs{
			Name: "greenquest_session",
		},
		Redis: config.RedisConfigs{Addr: "localhost:6379"},
		Kafka: config.KafkaConfigs{Addr: "localhost:9092"},
		Cache: config.CacheConfigs{
			Enable: true,
			TTL:    5 * time.Minute,
		},
		Quest: config.QuestConfigs{
			StartProgress:  10,
			ChampionScore:  2000,
			CompletedTopic: "quest_completed",
		},
	}
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg := defaultConfigs()

	if path := cctx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return err
		}
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return err
	}

	s.configs = &cfg
	return nil
}

func overrideFromEnv(cfg *config.Configs) error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Database, "DB_DATABASE")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.LogLevel, "DB_LOG_LEVEL")

	setString(&cfg.ApiServer.Host, "API_HOST")
	setString(&cfg.ApiServer.Port, "API_PORT")
	setString(&cfg.ApiServer.Cert, "API_CERT")
	setString(&cfg.ApiServer.Key, "API_KEY")
	if origins := os.Getenv("API_ALLOWED_ORIGINS"); origins != "" {
		cfg.ApiServer.AllowedOrigins = strings.Split(origins, ",")
	}

	setString(&cfg.Metrics.Host, "METRICS_HOST")
	setString(&cfg.Metrics.Port, "METRICS_PORT")

	setString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setString(&cfg.Auth.AccessToken.Name, "ACCESS_TOKEN_NAME")
	if err := setDuration(&cfg.Auth.AccessToken.Expiration, "ACCESS_TOKEN_EXPIRATION"); err != nil {
		return err
	}

	setString(&cfg.Session.Secret, "SESSION_SECRET")
	setString(&cfg.Session.Name, "SESSION_NAME")

	setString(&cfg.Redis.Addr, "REDIS_ADDRESS")
	setString(&cfg.Kafka.Addr, "KAFKA_ADDRESS")

	if err := setBool(&cfg.Cache.Enable, "CACHE_ENABLE"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Cache.TTL, "CACHE_TTL"); err != nil {
		return err
	}

	if err := setInt(&cfg.Quest.StartProgress, "QUEST_START_PROGRESS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Quest.ChampionScore, "CHAMPION_SCORE"); err != nil {
		return err
	}
	setString(&cfg.Quest.CompletedTopic, "QUEST_COMPLETED_TOPIC")

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}

	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}

	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}

	*dst = d
	return nil
}
