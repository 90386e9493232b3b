package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the toml config file, environment variables override it",
		EnvVars: []string{"CONFIG_FILE"},
	}

	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "GreenQuest"
	s.app.Usage = "Sustainable farming quests backend"
	s.app.Flags = []cli.Flag{configFlag}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves quests, badges, rewards and leaderboard.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database schema",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "auto",
					Usage: "Use gorm auto migration instead of the sql files",
				},
			},
			Category:    "Database",
			Description: `Used to apply the versioned sql migrations to the database.`,
		},
		{
			Action:      s.startSeed,
			Name:        "seed",
			Usage:       "Insert the demo catalog",
			Category:    "Database",
			Description: `Used to insert quests, badges and rewards. Existing rows are kept.`,
		},
		{
			Action:      s.startScorer,
			Name:        "scorer",
			Usage:       "Start the scorer worker",
			Category:    "Worker",
			Description: `Used to consume quest completed events and update sustainability scores.`,
		},
	}
}
