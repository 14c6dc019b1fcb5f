package logx

const (
	FieldAppName        = "app-name"
	FieldAppVersion     = "app-version"
	FieldCity           = "city"
	FieldCommunityID    = "community-id"
	FieldDistrict       = "district"
	FieldDurationMs     = "duration-ms"
	FieldError          = "error"
	FieldHTTPMethod     = "http-method"
	FieldHTTPRequest    = "http-request"
	FieldHTTPResponse   = "http-response"
	FieldIP             = "ip"
	FieldPage           = "page"
	FieldRequestBody    = "request-body"
	FieldRequestID      = "request-id"
	FieldResponseBody   = "response-body"
	FieldResponseStatus = "response-status"
	FieldStack          = "stack"
	FieldTraceID        = "trace-id"
	FieldURL            = "url"
)
