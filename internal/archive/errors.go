package archive

import (
	"fmt"

	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/pkg/failure"
)

type ArchiveErrorCause string

const (
	ErrCauseDiskFull              ArchiveErrorCause = "disk is full"
	ErrCauseWriteFailure          ArchiveErrorCause = "write failed"
	ErrCausePathError             ArchiveErrorCause = "path error"
	ErrCauseHashComputationFailed ArchiveErrorCause = "hash computation failed"
)

type ArchiveError struct {
	Message   string
	Retryable bool
	Cause     ArchiveErrorCause
	Path      string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive error: %s", e.Cause)
}

func (e *ArchiveError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapArchiveErrorToMetadataCause maps archive-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapArchiveErrorToMetadataCause(err *ArchiveError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseDiskFull:
		return metadata.CauseStorageFailure
	case ErrCauseWriteFailure:
		return metadata.CauseStorageFailure
	case ErrCausePathError:
		return metadata.CauseStorageFailure
	case ErrCauseHashComputationFailed:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
