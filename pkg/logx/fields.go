package logx

const (
	FieldActor           = "actor"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldCountry         = "country"
	FieldDriver          = "driver"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldItem            = "item"
	FieldPath            = "path"
	FieldPrice           = "price"
	FieldQty             = "qty"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldSide            = "side"
	FieldStack           = "stack"
	FieldTotal           = "total"
	FieldTraceID         = "trace-id"
	FieldTxID            = "tx-id"
	FieldURL             = "url"
	FieldUserID          = "user-id"
)
