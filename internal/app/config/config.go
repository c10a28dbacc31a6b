package config

import (
	"github.com/joho/godotenv"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "clinic"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILE_NAME", "service.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILE_NAME", "service_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                      utils.GetEnvString("APP_ENV", "development"),
			Port:                     utils.GetEnvString("APP_PORT", ":8080"),
			Version:                  utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                 utils.GetEnvString("APP_TIMEZONE", "Europe/Zurich"),
			EndpointPrefix:           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:              utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			ShutdownTimeoutInSeconds: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			InboundAPIKeyHash:        utils.GetEnvString("APP_INBOUND_API_KEY_HASH", ""),
		},
		Billing: Billing{
			SenderGLN: utils.GetEnvString("BILLING_SENDER_GLN", ""),
		},
		DocumentEngine: DocumentEngine{
			BaseUrl:                 utils.GetEnvString("DOCUMENT_ENGINE_BASE_URL", "http://localhost:9990"),
			RequestTimeoutInSeconds: utils.GetEnvInt("DOCUMENT_ENGINE_REQUEST_TIMEOUT_IN_SECONDS", 30),
			GeneratePDF:             utils.GetEnvBool("DOCUMENT_ENGINE_GENERATE_PDF", true),
		},
		Clearinghouse: Clearinghouse{
			ProxyBaseUrl:            utils.GetEnvString("CLEARINGHOUSE_PROXY_BASE_URL", "http://localhost:9991"),
			ProxyAPIKey:             utils.GetEnvString("CLEARINGHOUSE_PROXY_API_KEY", ""),
			Source:                  utils.GetEnvString("CLEARINGHOUSE_SOURCE", "aestheticclinic"),
			RequestTimeoutInSeconds: utils.GetEnvInt("CLEARINGHOUSE_REQUEST_TIMEOUT_IN_SECONDS", 30),
			UploadsPerMinute:        utils.GetEnvInt("CLEARINGHOUSE_UPLOADS_PER_MINUTE", 60),
			UploadBurst:             utils.GetEnvInt("CLEARINGHOUSE_UPLOAD_BURST", 10),
			TokenTTLInSeconds:       utils.GetEnvInt("CLEARINGHOUSE_TOKEN_TTL_IN_SECONDS", 60),
		},
		DocumentStore: DocumentStore{
			BucketName: utils.GetEnvString("DOCUMENT_STORE_BUCKET_NAME", "invoice-documents"),
		},
		CopyWorker: CopyWorker{
			Prefetch:             utils.GetEnvInt("COPY_WORKER_PREFETCH", 5),
			MaxAttempts:          utils.GetEnvInt("COPY_WORKER_MAX_ATTEMPTS", 3),
			TickSeconds:          utils.GetEnvInt("COPY_WORKER_TICK_SECONDS", 60),
			HTTPTimeoutInSeconds: utils.GetEnvInt("COPY_WORKER_HTTP_TIMEOUT_IN_SECONDS", 30),
		},
	}
}
