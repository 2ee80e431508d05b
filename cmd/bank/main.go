package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sheikh-saqib/cli-banking-system/internal/auth"
	"github.com/sheikh-saqib/cli-banking-system/internal/cli"
	"github.com/sheikh-saqib/cli-banking-system/internal/config"
	kafkaevents "github.com/sheikh-saqib/cli-banking-system/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/storage/file"
	"github.com/sheikh-saqib/cli-banking-system/internal/storage/memory"
	"github.com/sheikh-saqib/cli-banking-system/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.ErrorLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var store interfaces.AccountStore
	var txlog interfaces.TransactionLog
	switch cfg.Store {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to connect to postgres")
		}
		defer db.Close()
		pg := postgres.NewStore(db)
		store, txlog = pg, pg
	case "memory":
		mem := memory.NewStore()
		store, txlog = mem, mem
	default:
		fs := file.NewStore(cfg.DataDir)
		store, txlog = fs, file.NewTxLog(cfg.DataDir)
	}

	if err := store.EnsureReady(); err != nil {
		log.Fatal().Err(err).Msg("storage initialization failed")
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafkaevents.NewPublisher(cfg.KafkaBrokers, "transfer_completed")
		defer p.Close()
		publisher = p
	}

	app := cli.NewApp(cli.NewTerminal(), auth.NewService(store), store, txlog, publisher)
	if err := app.Run(); err != nil {
		log.Fatal().Err(err).Msg("bank terminated")
	}
}
