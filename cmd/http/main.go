package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/controllers"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/middlewares"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/routers"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/drivers/database"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/drivers/logger"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/drivers/messaging"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/drivers/storage"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/clearinghouse"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/assembler"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/clinics"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/insurers"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/invoices"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/patientcopy"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/patients"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/responses"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/core/submissions"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/docengine"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/shared/copyqueue"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/shared/documentstore"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/shared/locker"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	processLog := logger.NewLogrusLogger(internalConfig)
	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		processLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	if err := bootstrapTheApp(&bootstrap, workerCtx); err != nil {
		cancelWorker()
		processLog.Fatalf("Bootstrap failed: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			processLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	processLog.Infof("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	processLog.Info("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		processLog.Fatalf("Server forced to shutdown: %v", err)
	}

	cancelWorker()
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		processLog.Fatalf("Error during shutdown: %v", err)
	}

	processLog.Info("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap, workerCtx context.Context) error {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	documentStore := documentstore.NewMinioDocumentStore(bootstrap.Minio, bootstrap.InternalConfig.DocumentStore, bootstrap.Logger)

	copyQueue, err := copyqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.CopyWorker.Prefetch)
	if err != nil {
		return err
	}
	copyDispatcher := copyqueue.NewDispatcher(copyQueue)

	// Read models
	invoiceRepository := invoices.NewInvoiceMongoRepository(bootstrap.MongoDB, dbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
	insurerRepository := insurers.NewInsurerMongoRepository(bootstrap.MongoDB, dbName)
	clinicRepository := clinics.NewClinicMongoRepository(bootstrap.MongoDB, dbName)

	// Assembler
	invoiceAssembler := assembler.NewInvoiceAssembler(
		invoiceRepository,
		patientRepository,
		insurerRepository,
		clinicRepository,
		nil,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Outbound clients
	documentEngineClient := docengine.NewDocumentEngineClient(bootstrap.InternalConfig.DocumentEngine, bootstrap.Logger)
	clearinghouseClient, err := clearinghouse.NewClearinghouseClient(bootstrap.InternalConfig.Clearinghouse, bootstrap.Logger)
	if err != nil {
		return err
	}

	// Submissions
	submissionRepository := submissions.NewSubmissionMongoRepository(bootstrap.MongoDB, dbName)
	historyRepository := submissions.NewSubmissionHistoryMongoRepository(bootstrap.MongoDB, dbName)
	submissionLifecycle := submissions.NewSubmissionLifecycle(
		submissionRepository,
		historyRepository,
		redisRepository,
		bootstrap.Logger,
	)
	submissionUsecase := submissions.NewSubmissionUsecase(
		invoiceAssembler,
		documentEngineClient,
		clearinghouseClient,
		submissionLifecycle,
		submissionRepository,
		historyRepository,
		documentStore,
		copyDispatcher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	submissionController := controllers.NewSubmissionController(bootstrap.Logger, submissionUsecase)

	// Inbound responses
	responseUsecase := responses.NewResponseUsecase(submissionRepository, submissionLifecycle, bootstrap.Logger)
	responseController := controllers.NewResponseController(bootstrap.Logger, responseUsecase)

	healthController := controllers.NewHealthController(bootstrap.Logger)

	// Patient copy worker
	copyWorker := patientcopy.NewWorker(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockerService,
		copyQueue,
		invoiceAssembler,
		documentEngineClient,
		clearinghouseClient,
	)
	bootstrap.WorkerStop = copyWorker.Start(workerCtx)

	mw := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)
	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		mw,
		submissionController,
		responseController,
		healthController,
	)

	return nil
}
