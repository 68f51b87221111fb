package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/inkedmayhem/content-pipeline/config"
	"github.com/inkedmayhem/content-pipeline/internal/controller/commands"
	"github.com/inkedmayhem/content-pipeline/internal/controller/restapi"
	"github.com/inkedmayhem/content-pipeline/internal/controller/worker/scheduler"
	"github.com/inkedmayhem/content-pipeline/internal/infrastructure/catalog"
	"github.com/inkedmayhem/content-pipeline/internal/infrastructure/notify"
	"github.com/inkedmayhem/content-pipeline/internal/infrastructure/processor"
	"github.com/inkedmayhem/content-pipeline/internal/repo/persistent"
	"github.com/inkedmayhem/content-pipeline/internal/usecase/pipeline"
	"github.com/inkedmayhem/content-pipeline/internal/usecase/transform"
	"github.com/inkedmayhem/content-pipeline/pkg/httpserver"
	"github.com/inkedmayhem/content-pipeline/pkg/kafka/consumer"
	"github.com/inkedmayhem/content-pipeline/pkg/kafka/producer"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
	"github.com/inkedmayhem/content-pipeline/pkg/postgres"
	"github.com/inkedmayhem/content-pipeline/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	docStore := persistent.NewDocStoreRepo(pg)
	assetStore := persistent.NewAssetRepo(s3c, cfg.S3.Bucket)
	creatorConfigs := persistent.NewCreatorConfigRepo(docStore)

	// Kafka Producer (notifications)
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}
	notifier := notify.NewEventNotifier(kafkaProducer, cfg.Kafka.EventsTopic)

	// Use-Case

	// transform use-case
	transformUseCase := transform.New(assetStore, processor.New(), l)

	// pipeline use-case
	pipelineUseCase := pipeline.New(
		docStore,
		assetStore,
		creatorConfigs,
		pg,
		transformUseCase,
		notifier,
		catalog.NewWriter(docStore),
		l,
	)

	// Scheduled Publisher Worker
	schedulerWorker := scheduler.New(
		pipelineUseCase,
		l,
		cfg.Scheduler.SweepInterval,
		cfg.Scheduler.SweepTimeout,
	)

	// Kafka Consumer (chat bot commands)
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.CommandsTopic)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
	}

	commandController := commands.New(
		pipelineUseCase,
		kafkaConsumer,
		l,
		cfg.Commands.CommitTimeout,
		cfg.Commands.ProcessTimeout,
		cfg.Commands.Workers,
	)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, pipelineUseCase, l)

	// Start Components
	err = schedulerWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - schedulerWorker.Start: %w", err))
	}
	err = commandController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - commandController.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	schedShutdownCtx, schedShutdownCancel := context.WithTimeout(ctx, cfg.Scheduler.ShutdownTimeout)
	defer schedShutdownCancel()
	err = schedulerWorker.Shutdown(schedShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - schedulerWorker.Shutdown: %w", err))
	}

	cmdShutdownCtx, cmdShutdownCancel := context.WithTimeout(ctx, cfg.Commands.ShutdownTimeout)
	defer cmdShutdownCancel()
	err = commandController.Shutdown(cmdShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - commandController.Shutdown: %w", err))
	}

	err = notifier.Close()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - notifier.Close: %w", err))
	}
}
