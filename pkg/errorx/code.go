package errorx

type Code string

func (c Code) String() string {
	return string(c)
}

const (
	// Client errors (4xx)
	CodeInvalid          Code = "INVALID"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeMalformedJSON    Code = "MALFORMED_JSON"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"

	// Business logic
	CodeAlreadyProcessed      Code = "ALREADY_PROCESSED"
	CodeBusinessRuleViolation Code = "BUSINESS_RULE_VIOLATION"

	// Server errors (5xx)
	CodeInternal        Code = "INTERNAL_ERROR"
	CodeUpstreamError   Code = "UPSTREAM_SERVICE_ERROR"
	CodeUpstreamTimeout Code = "UPSTREAM_TIMEOUT"
)
