package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingDataKey           = "data"
	LoggingResourceKey       = "resource"
	LoggingConsommationIDKey = "consommation_id"
	LoggingGlobalBillIDKey   = "global_bill_id"
	LoggingInsuranceIDKey    = "insurance_id"
)
