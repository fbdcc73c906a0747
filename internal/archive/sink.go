package archive

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/pkg/failure"
	"github.com/HafizAhmed223/backend/pkg/fileutil"
	"github.com/HafizAhmed223/backend/pkg/hashutil"
)

/*
Responsibilities

- Persist raw product page markup after a successful fetch
- Ensure deterministic filenames

Output Characteristics

- Stable directory layout
- Content-addressed filenames: re-fetching an unchanged page overwrites
  the same file, a changed page lands next to the old snapshot
- Overwrite-safe reruns

Archiving is an audit trail for the extraction pipeline. A failed write
never fails the retrieval that triggered it; callers treat archive errors
as recoverable losses.
*/

type Sink interface {
	Write(
		archiveDir string,
		productID string,
		body []byte,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	archiveDir string,
	productID string,
	body []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(archiveDir, productID, body, hashAlgo)
	if err != nil {
		var archiveError *ArchiveError
		errors.As(err, &archiveError)
		s.metadataSink.RecordError(
			time.Now(),
			"archive",
			"LocalSink.Write",
			mapArchiveErrorToMetadataCause(archiveError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrProductID, productID),
				metadata.NewAttr(metadata.AttrWritePath, archiveError.Path),
			},
		)
		return WriteResult{}, archiveError
	}

	s.metadataSink.RecordArtifact(
		metadata.ArtifactRawHTML,
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrProductID, productID),
			metadata.NewAttr(metadata.AttrField, writeResult.ContentHash()),
		},
	)

	return writeResult, nil
}

func write(
	archiveDir string,
	productID string,
	body []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	contentHash, err := hashutil.HashBytes(body, hashAlgo)
	if err != nil {
		return WriteResult{}, &ArchiveError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
			Path:      "",
		}
	}

	// First 12 hex characters are enough to tell page snapshots apart
	shortHash, err := hashutil.ShortHashBytes(body, hashAlgo, 12)
	if err != nil {
		return WriteResult{}, &ArchiveError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
			Path:      "",
		}
	}

	if err := fileutil.EnsureDir(archiveDir); err != nil {
		var fileErr *fileutil.FileError
		if errors.As(err, &fileErr) {
			cause := ErrCauseWriteFailure
			retryable := false
			if fileErr.Cause == fileutil.ErrCausePathError {
				// Could be disk full or permission issue
				cause = ErrCausePathError
				retryable = true
			}
			return WriteResult{}, &ArchiveError{
				Message:   err.Error(),
				Retryable: retryable,
				Cause:     cause,
				Path:      archiveDir,
			}
		}
		return WriteResult{}, &ArchiveError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      archiveDir,
		}
	}

	// Construct full file path: archiveDir/<product_id>-<content_hash>.html
	filename := productID + "-" + shortHash + ".html"
	fullPath := filepath.Join(archiveDir, filename)

	if err := os.WriteFile(fullPath, body, 0644); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		return WriteResult{}, &ArchiveError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      fullPath,
		}
	}

	return NewWriteResult(productID, fullPath, contentHash), nil
}

// NoopSink discards page snapshots. It stands in for LocalSink when
// archiving is disabled so callers never branch on configuration.
type NoopSink struct{}

func (s *NoopSink) Write(
	archiveDir string,
	productID string,
	body []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	return WriteResult{}, nil
}

var (
	_ Sink = (*LocalSink)(nil)
	_ Sink = (*NoopSink)(nil)
)
