package extractor

import (
	"fmt"

	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseTitleMarkerMissing  ExtractionErrorCause = "title marker missing"
	ErrCauseDocumentUnparseable ExtractionErrorCause = "document unparseable"
)

type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s", e.Cause)
}

func (e *ExtractionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapExtractionErrorToMetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapExtractionErrorToMetadataCause(err *ExtractionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTitleMarkerMissing:
		return metadata.CauseContentInvalid
	case ErrCauseDocumentUnparseable:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
