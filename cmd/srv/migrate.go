package main

import (
	"github.com/greenquest-lab/backend/migration"
	"github.com/greenquest-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if cctx.Bool("auto") {
		s.loadContext(s.configs.Database.ConnectionString())
		if err := migration.AutoMigrate(s.ctx); err != nil {
			return err
		}
	} else {
		// The sql files hold several statements each.
		s.loadContext(s.configs.Database.MigrationString())
		if err := migration.Migrate(s.ctx); err != nil {
			return err
		}
	}

	xcontext.Logger(s.ctx).Infof("Migrate database successfully")
	return nil
}

func (s *srv) startSeed(*cli.Context) error {
	s.loadContext(s.configs.Database.ConnectionString())
	s.loadRepos()

	seeder := migration.NewSeeder(s.questRepo, s.questTaskRepo, s.badgeRepo, s.rewardRepo)
	if err := seeder.Seed(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Seed database successfully")
	return nil
}
