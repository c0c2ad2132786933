package constvars

// Validation messages for clients, mapped by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientBillingBackendUnavailable     = "the billing backend is not reachable"
	ErrClientBillNotCreated                = "the bill could not be created"
	ErrClientTooManyRequests               = "too many requests, slow down"
)

// Error messages for developers
const (
	ErrDevInvalidInput      = "invalid input"
	ErrDevCannotParseJSON   = "cannot parse JSON"
	ErrDevCannotMarshalJSON = "cannot marshal JSON"
	ErrDevValidationFailed  = "validation failed"
	ErrDevMissingRequestID  = "request id missing from context"

	ErrDevCreateHTTPRequest = "failed to create HTTP request"
	ErrDevSendHTTPRequest   = "failed to send HTTP request"

	// Billing backend messages
	ErrDevBackendGetResource    = "failed to get %s from billing backend"
	ErrDevBackendCreateResource = "failed to create %s on billing backend"
	ErrDevBackendDecodeResponse = "failed to decode %s response from billing backend"
	ErrDevBackendErrorStatus    = "billing backend returned status %d for %s"
	ErrDevCreateNotRecovered    = "consommation create failed and no created record could be recovered (expected %d items)"

	// Limiter messages
	ErrDevCreateRateLimited = "consommation create quota exceeded"
)
