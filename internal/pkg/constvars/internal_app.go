package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_API_KEY_AUTH             ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "ACLNC_SVC_"
)

const (
	ResourceInvoices    = "invoices"
	ResourceSubmissions = "submissions"
	ResourceResponses   = "responses"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
