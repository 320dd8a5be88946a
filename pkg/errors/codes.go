package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// The prefix before the underscore names the module that owns the code.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Short aliases used at most call sites.
const (
	CodeNotFound = ErrCodeNotFound
	CodeOK       = ErrorCode("OK")
	CodeUnknown  = ErrorCode("UNKNOWN")
)

// Dataset Error Codes
const (
	ErrCodeDatasetUnavailable ErrorCode = "DATASET_001"
	ErrCodeDatasetNotFound    ErrorCode = "DATASET_002"
	ErrCodeDatasetParseError  ErrorCode = "DATASET_003"
	ErrCodeDatasetSourceKind  ErrorCode = "DATASET_004"
	ErrCodeDatasetClosed      ErrorCode = "DATASET_005"
	ErrCodeDatasetTooLarge    ErrorCode = "DATASET_006"
)

// Choropleth Error Codes
const (
	ErrCodeUnknownIndicator ErrorCode = "CHORO_001"
	ErrCodeUnknownPalette   ErrorCode = "CHORO_002"
	ErrCodeInvalidPalette   ErrorCode = "CHORO_003"
	ErrCodeInvalidColor     ErrorCode = "CHORO_004"
	ErrCodeInvalidMode      ErrorCode = "CHORO_005"
	ErrCodeInvalidEvent     ErrorCode = "CHORO_006"
)

// Geography Error Codes
const (
	ErrCodeGeographyParse       ErrorCode = "GEO_001"
	ErrCodeGeographyUnsupported ErrorCode = "GEO_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeDatasetUnavailable: http.StatusServiceUnavailable,
	ErrCodeDatasetNotFound:    http.StatusNotFound,
	ErrCodeDatasetParseError:  http.StatusBadGateway,
	ErrCodeDatasetSourceKind:  http.StatusInternalServerError,
	ErrCodeDatasetClosed:      http.StatusServiceUnavailable,
	ErrCodeDatasetTooLarge:    http.StatusBadGateway,

	ErrCodeUnknownIndicator: http.StatusNotFound,
	ErrCodeUnknownPalette:   http.StatusNotFound,
	ErrCodeInvalidPalette:   http.StatusBadRequest,
	ErrCodeInvalidColor:     http.StatusBadRequest,
	ErrCodeInvalidMode:      http.StatusBadRequest,
	ErrCodeInvalidEvent:     http.StatusBadRequest,

	ErrCodeGeographyParse:       http.StatusBadGateway,
	ErrCodeGeographyUnsupported: http.StatusUnprocessableEntity,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeDatasetUnavailable: "dataset source unavailable",
	ErrCodeDatasetNotFound:    "dataset not found",
	ErrCodeDatasetParseError:  "failed to parse dataset",
	ErrCodeDatasetSourceKind:  "unsupported dataset source",
	ErrCodeDatasetClosed:      "dataset repository closed",
	ErrCodeDatasetTooLarge:    "dataset document too large",

	ErrCodeUnknownIndicator: "unknown indicator",
	ErrCodeUnknownPalette:   "unknown palette",
	ErrCodeInvalidPalette:   "invalid palette",
	ErrCodeInvalidColor:     "invalid color",
	ErrCodeInvalidMode:      "invalid normalization mode",
	ErrCodeInvalidEvent:     "invalid interaction event",

	ErrCodeGeographyParse:       "failed to parse geography",
	ErrCodeGeographyUnsupported: "unsupported geography document",
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
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
