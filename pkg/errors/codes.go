package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// CodeOK is the sentinel code returned by GetCode for a nil error.
const CodeOK ErrorCode = "OK"

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
)

// Document / corpus ingestion error codes.
const (
	ErrCodeDocumentInvalid   ErrorCode = "DOC_001"
	ErrCodeDocumentNotCase   ErrorCode = "DOC_002"
	ErrCodeExtractionFailed  ErrorCode = "DOC_003"
	ErrCodeCorpusEmpty       ErrorCode = "DOC_004"
	ErrCodeIngestInterrupted ErrorCode = "DOC_005"
)

// Precedent store error codes.
const (
	ErrCodePrecedentNotFound ErrorCode = "PREC_001"
	ErrCodePrecedentExists   ErrorCode = "PREC_002"
	ErrCodePrecedentInvalid  ErrorCode = "PREC_003"
)

// Analysis error codes.
const (
	ErrCodeAnalysisFailed      ErrorCode = "ANL_001"
	ErrCodeIssueEmpty          ErrorCode = "ANL_002"
	ErrCodeJurisdictionInvalid ErrorCode = "ANL_003"
)

// External collaborator error codes (citation network, concept extractor).
const (
	ErrCodeNetworkUnavailable  ErrorCode = "SRC_001"
	ErrCodeNetworkEntryMissing ErrorCode = "SRC_002"
	ErrCodeConceptsUnavailable ErrorCode = "SRC_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,

	ErrCodeDocumentInvalid:   http.StatusBadRequest,
	ErrCodeDocumentNotCase:   http.StatusUnprocessableEntity,
	ErrCodeExtractionFailed:  http.StatusUnprocessableEntity,
	ErrCodeCorpusEmpty:       http.StatusBadRequest,
	ErrCodeIngestInterrupted: http.StatusInternalServerError,

	ErrCodePrecedentNotFound: http.StatusNotFound,
	ErrCodePrecedentExists:   http.StatusConflict,
	ErrCodePrecedentInvalid:  http.StatusUnprocessableEntity,

	ErrCodeAnalysisFailed:      http.StatusInternalServerError,
	ErrCodeIssueEmpty:          http.StatusBadRequest,
	ErrCodeJurisdictionInvalid: http.StatusBadRequest,

	ErrCodeNetworkUnavailable:  http.StatusServiceUnavailable,
	ErrCodeNetworkEntryMissing: http.StatusNotFound,
	ErrCodeConceptsUnavailable: http.StatusServiceUnavailable,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",

	ErrCodeDocumentInvalid:   "invalid document",
	ErrCodeDocumentNotCase:   "document is not a case opinion",
	ErrCodeExtractionFailed:  "precedent extraction failed",
	ErrCodeCorpusEmpty:       "corpus contains no documents",
	ErrCodeIngestInterrupted: "corpus ingestion interrupted",

	ErrCodePrecedentNotFound: "precedent not found",
	ErrCodePrecedentExists:   "precedent already exists",
	ErrCodePrecedentInvalid:  "invalid precedent record",

	ErrCodeAnalysisFailed:      "precedent analysis failed",
	ErrCodeIssueEmpty:          "legal issue text is empty",
	ErrCodeJurisdictionInvalid: "invalid jurisdiction",

	ErrCodeNetworkUnavailable:  "citation network provider unavailable",
	ErrCodeNetworkEntryMissing: "no citation network entry for case",
	ErrCodeConceptsUnavailable: "concept extractor unavailable",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
