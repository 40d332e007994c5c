package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
	if log, err = cfg.NewLogger(); err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}

	url, err := cfg.Postgres.ConnString()
	if err != nil {
		log.Fatal("invalid database config: ", err)
	}

	migrator, err := database.Migrate(url, database.Migrations)
	if err != nil {
		log.Fatal(err)
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Error("unable to check migration version")
		return
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
