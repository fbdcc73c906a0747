package fetcher

import (
	"fmt"

	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout           FetchErrorCause = "timeout"
	ErrCauseNetworkFailure    FetchErrorCause = "network issues"
	ErrCauseProxyAuthRejected FetchErrorCause = "proxy credential rejected"
	ErrCausePageForbidden     FetchErrorCause = "forbidden"
	ErrCausePageNotFound      FetchErrorCause = "page not found"
	ErrCauseRequestTooMany    FetchErrorCause = "too many requests"
	ErrCauseRequest5xx        FetchErrorCause = "5xx"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s", e.Cause)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout:
		return metadata.CauseNetworkFailure
	case ErrCauseNetworkFailure:
		return metadata.CauseNetworkFailure
	case ErrCauseRequest5xx:
		return metadata.CauseNetworkFailure
	case ErrCauseRequestTooMany:
		return metadata.CausePolicyDisallow
	case ErrCausePageForbidden:
		return metadata.CausePolicyDisallow
	case ErrCauseProxyAuthRejected:
		return metadata.CausePolicyDisallow
	default:
		return metadata.CauseUnknown
	}
}
