package retrieval

import (
	"fmt"

	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/pkg/failure"
)

type RetrievalErrorCause string

const (
	ErrCauseProductIDInvalid RetrievalErrorCause = "product identifier invalid"
	ErrCauseUnexpectedResult RetrievalErrorCause = "unexpected retrieval result"
)

type RetrievalError struct {
	Message   string
	Retryable bool
	Cause     RetrievalErrorCause
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval error: %s", e.Cause)
}

func (e *RetrievalError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapRetrievalErrorToMetadataCause maps retrieval-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapRetrievalErrorToMetadataCause(err *RetrievalError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseProductIDInvalid:
		return metadata.CauseContentInvalid
	case ErrCauseUnexpectedResult:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
