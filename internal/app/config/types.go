package config

type (
	InternalConfig struct {
		App            App
		Billing        Billing
		DocumentEngine DocumentEngine
		Clearinghouse  Clearinghouse
		DocumentStore  DocumentStore
		CopyWorker     CopyWorker
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}

	App struct {
		Env                      string
		Port                     string
		Version                  string
		Timezone                 string
		EndpointPrefix           string
		MaxRequests              int
		ShutdownTimeoutInSeconds int
		// InboundAPIKeyHash is the bcrypt hash of the API key the
		// clearinghouse response forwarder presents.
		InboundAPIKeyHash string
	}

	// Billing carries pipeline-wide billing identity overrides.
	Billing struct {
		// SenderGLN, when set, replaces the clinic's registered routing
		// identifier as the transport sender.
		SenderGLN string
	}

	DocumentEngine struct {
		BaseUrl                 string
		RequestTimeoutInSeconds int
		GeneratePDF             bool
	}

	Clearinghouse struct {
		ProxyBaseUrl string
		// ProxyAPIKey gates transmission: an empty value means transmission
		// is disabled, which is a valid configuration rather than an error.
		ProxyAPIKey             string
		Source                  string
		RequestTimeoutInSeconds int
		UploadsPerMinute        int
		UploadBurst             int
		TokenTTLInSeconds       int
	}

	DocumentStore struct {
		BucketName string
	}

	CopyWorker struct {
		Prefetch             int
		MaxAttempts          int
		TickSeconds          int
		HTTPTimeoutInSeconds int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Host     string
		Port     string
		Username string
		Password string
		UseSSL   bool
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
