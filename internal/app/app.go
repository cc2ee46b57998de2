package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	v1Grpc "github.com/Eswarchinthakayala-webdesign/Monvix/internal/delivery/v1/grpc"
	v1Http "github.com/Eswarchinthakayala-webdesign/Monvix/internal/delivery/v1/http"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/infrastructure/firecrawl"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/infrastructure/kafka"
	minioInfra "github.com/Eswarchinthakayala-webdesign/Monvix/internal/infrastructure/minio"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/infrastructure/realtime"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/infrastructure/telegram"
	s3Repo "github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/minio"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/pgdb"
	pgdbConv "github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/pgdb/converter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/redis"
	redisConv "github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/redis/converter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/clients"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/closer"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/postgres"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	topicTimeout    = 10 * time.Second
)

// App владеет всеми долгоживущими компонентами процесса.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	bgCtx    context.Context
	bgCancel context.CancelFunc

	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	worker   *kafka.OutboxWorker
	consumer *kafka.AlertConsumer
}

// NewApp подключает хранилища и собирает граф зависимостей.
// При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *config.Config, logger logger.Logger) (_ *App, err error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(0),
	}
	a.bgCtx, a.bgCancel = context.WithCancel(context.Background())

	defer func() {
		if err != nil {
			a.bgCancel()
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if cerr := a.closer.Close(ctx); cerr != nil {
				logger.Warnf("cleanup after failed init: %v", cerr)
			}
		}
	}()

	initCtx, initCancel := context.WithTimeout(context.Background(), initTimeout)
	defer initCancel()

	db, err := initPGDB(initCtx, logger, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	if err := redisClient.Ping(initCtx); err != nil {
		logger.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("redis", redisClient.Close)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(initCtx, minioClient, cfg.Minio, minioInfra.RawPrefix); err != nil {
		logger.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	producer := kafka.NewProducer(logger, cfg.Kafka)
	if err := producer.EnsureTopic(topicTimeout); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	a.closer.Add("background context", func(context.Context) error {
		a.bgCancel()
		return nil
	})

	// репозитории
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	historyRepo := pgdb.NewPriceHistoryRepo(db.Pool)
	alertRepo := pgdb.NewAlertRepo(db.Pool)
	logRepo := pgdb.NewScrapeLogRepo(db.Pool, pgdbConv.NewScrapeLogConverter())
	profileRepo := pgdb.NewProfileRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewCacheConverter(), cfg.Redis, logger)
	rawRepo := s3Repo.NewRawObjectRepo(minioClient, cfg.Minio)
	txManager := tr.NewManager(db.Pool)

	// инфраструктура
	extractor := firecrawl.NewClient(cfg.Firecrawl, nil, logger)
	bus := realtime.NewRedisBus(redisClient, logger)
	archive := minioInfra.NewMinioInfrastructure(rawRepo, logger, a.bgCtx)
	codec := kafka.NewAlertCodec()

	notifier, err := telegram.NewNotifier(cfg.Telegram, logger)
	if err != nil {
		logger.Errorf(err, "failed to initialize telegram notifier")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// сценарии
	alertUC := usecase.NewAlertUC(alertRepo, productRepo, outboxRepo, codec, txManager, bus, logger)
	scrapeUC := usecase.NewScrapeUC(extractor, productRepo, historyRepo, logRepo, alertUC, txManager, bus, cacheRepo, archive, logger)
	productUC := usecase.NewProductUC(productRepo, historyRepo, logRepo, cacheRepo, scrapeUC, bus, logger)
	profileUC := usecase.NewProfileUC(profileRepo, bus, logger)
	notifyUC := usecase.NewNotifyUC(profileRepo, notifier, codec, logger)
	changeUC := usecase.NewChangeUC(bus)

	a.closer.Add("raw archive", archive.WaitForArchive)
	a.closer.Add("scrape runs", productUC.WaitForRuns)

	a.worker = kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	a.closer.Add("outbox worker", func(context.Context) error {
		a.worker.Stop()
		return nil
	})

	a.consumer = kafka.NewAlertConsumer(cfg.Kafka, notifyUC, logger)
	a.closer.Add("alert consumer", func(context.Context) error { return a.consumer.Stop() })

	// доставка
	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, logger)
	a.grpcSrv.RegisterServices(a.bgCtx,
		v1Grpc.Probe{Name: "postgres", Check: db.Ping},
		v1Grpc.Probe{Name: "redis", Check: redisClient.Ping},
	)
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(v1Http.Usecases{
		Product: productUC,
		Alert:   alertUC,
		Profile: profileUC,
		Change:  changeUC,
	}, cfg.Site)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.httpSrv.RegisterOnShutdown(router.CloseStreams)
	a.closer.Add("http server", a.httpSrv.Stop)

	return a, nil
}

// Run запускает фоновые воркеры и серверы и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	a.worker.Start(a.bgCtx)
	a.consumer.Start(a.bgCtx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(postgres.DefaultMigrations, logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
