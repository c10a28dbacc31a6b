package constvars

// Validation messages, mapped by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"gte":      "must be greater than or equal to %s",
	"uuid":     "must be a valid UUID",
	"datetime": "must be a valid date",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientInvoiceNotFound               = "invoice not found"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientInsurerNotFound               = "insurer not found"
	ErrClientSubmissionNotFound            = "submission not found"
	ErrClientIncompleteInvoiceData         = "invoice data is incomplete and cannot be submitted"
	ErrClientDocumentGenerationFailed      = "invoice document could not be generated"
	ErrClientTransmissionFailed            = "invoice could not be transmitted to the clearinghouse"
	ErrClientResponseUnusable              = "response content is empty or unusable"
	ErrClientSubmissionNotDraft            = "submission is not in a retransmittable state"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotReadBody         = "cannot read request body"
	ErrDevValidationFailed       = "validation failed"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevReadHTTPResponse       = "failed to read HTTP response body"
	ErrDevMissingRequestID       = "request id missing from context"
	ErrDevInvalidAPIKey          = "invalid API key"
	ErrDevURLParamIDValidation   = "URL parameter %s failed validation"
	ErrDevServerDeadlineExceeded = "deadline exceeded"

	// Pipeline messages
	ErrDevInvoiceNotFound          = "invoice document not found in store"
	ErrDevPatientNotFound          = "patient document not found in store"
	ErrDevInsurerNotFound          = "insurer document not found in store"
	ErrDevSubmissionNotFound       = "submission document not found in store"
	ErrDevNoResolvableServiceLines = "no structured service lines and no duration to derive them from"
	ErrDevDocumentEngineFailure    = "document engine reported generation failure: %s"
	ErrDevUploadFailed             = "clearinghouse upload failed: %s"
	ErrDevResponseEmptyContent     = "inbound response has no usable content"
	ErrDevSubmissionTerminal       = "submission already in terminal status %s"
	ErrDevSubmissionNotDraft       = "submission status %s does not allow retransmission"
	ErrDevInvalidStatusTransition  = "status transition %s -> %s is not allowed"

	// Database messages
	ErrDevMongoDBInsert       = "failed to insert document into mongo"
	ErrDevMongoDBUpdate       = "failed to update document in mongo"
	ErrDevMongoDBFind         = "failed to find document in mongo"
	ErrDevDBStringNotObjectID = "given ID is not valid object ID"

	// Redis messages
	ErrDevRedisSet    = "failed to set value in redis"
	ErrDevRedisGet    = "failed to get value from redis"
	ErrDevRedisDelete = "failed to delete value from redis"
	ErrDevRedisSetNX  = "failed to set NX value in redis"
	ErrDevRedisUnlock = "failed to release redis lock"

	// Queue messages
	ErrDevQueuePublish = "failed to publish message to queue"
	ErrDevQueueConfirm = "queue publish was not confirmed by broker"

	// Storage messages
	ErrDevStorageUpload = "failed to upload object to storage"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)
