package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/wilkadeals/locauto/internal/app"
	seeders "github.com/wilkadeals/locauto/internal/seeder"
	"github.com/wilkadeals/locauto/internal/version"
	"github.com/wilkadeals/locauto/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	runSeeders := flag.Bool("seed", false, "seed the database and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	application, err := app.NewApplication(logger)
	if err != nil {
		return err
	}
	defer application.DB.Close()
	defer application.Cache.Close()

	if *runSeeders {
		seeders.New(application.DB).Run()
		return nil
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	wk := worker.New(&worker.Worker{
		KafkaStream:     application.Kafka,
		Ctx:             workerCtx,
		Helper:          application.Helper,
		Mailer:          application.Mailer,
		Config:          &application.Config,
		UserRepo:        application.DB.User(),
		ReservationRepo: application.DB.Reservation(),
	})

	go wk.ReservationCreatedWorker()
	go wk.AccountReviewedWorker()
	go wk.DepositReceivedWorker()

	return application.ServeHTTP()
}
