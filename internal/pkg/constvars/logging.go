package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingRequestKey      = "request"
	LoggingResponseKey     = "response"
	LoggingEndpointKey     = "endpoint"
	LoggingMethodKey       = "method"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingErrorTypeKey    = "error_type"
	LoggingInvoiceIDKey    = "invoice_id"
	LoggingRecordIDKey     = "record_id"
	LoggingPatientIDKey    = "patient_id"
	LoggingInsurerIDKey    = "insurer_id"
	LoggingSubmissionIDKey = "submission_id"
	LoggingInvoiceNoKey    = "invoice_number"
	LoggingStatusKey       = "status"
	LoggingMessageIDKey    = "message_id"
	LoggingFilenameKey     = "filename"
	LoggingRedisKey        = "redis_key"
	LoggingQueueKey        = "queue"
	LoggingAttemptKey      = "attempt"
)
